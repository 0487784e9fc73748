package handler

import (
	"net/http"
	"time"

	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *persistence.Database, version string, base BaseHandler) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		db:          db,
		version:     version,
	}
}

type healthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := healthStatus{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{},
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status.Status = "degraded"
			status.Checks["database"] = "unreachable"
		} else {
			status.Checks["database"] = "ok"
		}
	}

	if status.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(status))
		return
	}
	h.Success(c, status)
}
