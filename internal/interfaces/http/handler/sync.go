package handler

import (
	connectorapp "github.com/crm/backend/internal/application/connector"
	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncHandler serves sync job creation and inspection endpoints
type SyncHandler struct {
	BaseHandler
	syncService *connectorapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *connectorapp.SyncService, base BaseHandler) *SyncHandler {
	return &SyncHandler{
		BaseHandler: base,
		syncService: syncService,
	}
}

// StartSync handles POST /api/v1/connectors/:provider/sync
func (h *SyncHandler) StartSync(c *gin.Context) {
	var uri dto.ProviderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err)
		return
	}

	var req dto.StartSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	job, err := h.syncService.StartSync(
		c.Request.Context(),
		h.getUserID(c),
		connector.Provider(uri.Provider),
		connector.SyncJobType(req.JobType),
	)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Accepted(c, connectorapp.NewSyncJobResponse(job))
}

// GetJob handles GET /api/v1/sync-jobs/:id
func (h *SyncHandler) GetJob(c *gin.Context) {
	var uri dto.JobURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err)
		return
	}

	jobID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, err)
		return
	}

	job, err := h.syncService.GetJob(c.Request.Context(), h.getUserID(c), jobID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, connectorapp.NewSyncJobResponse(job))
}

// ListJobs handles GET /api/v1/sync-jobs
func (h *SyncHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	filter := connector.SyncJobFilter{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if req.Provider != "" {
		provider := connector.Provider(req.Provider)
		filter.Provider = &provider
	}
	if req.Status != "" {
		status := connector.SyncJobStatus(req.Status)
		filter.Status = &status
	}

	jobs, total, err := h.syncService.ListJobs(c.Request.Context(), h.getUserID(c), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]connectorapp.SyncJobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, connectorapp.NewSyncJobResponse(job))
	}
	h.SuccessWithMeta(c, responses, total, page, pageSize)
}
