package router

import (
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB
	ipRateLimit  = 300
	ipRateWindow = time.Minute
)

// Handlers groups the handlers wired into the router
type Handlers struct {
	Health    *handler.HealthHandler
	Connector *handler.ConnectorHandler
	Sync      *handler.SyncHandler
}

// New builds the gin engine with the full middleware chain and routes
func New(cfg *config.Config, log *zap.Logger, identity gin.HandlerFunc, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidations(); err != nil {
		log.Warn("failed to register custom validations", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.SecureHeaders())
	engine.Use(middleware.BodyLimit(maxBodyBytes))
	engine.Use(middleware.IPRateLimit(ipRateLimit, ipRateWindow))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", h.Health.Health)

	v1 := engine.Group("/api/v1")
	v1.Use(identity)
	{
		connectors := v1.Group("/connectors")
		{
			connectors.GET("/status", h.Connector.StatusAll)
			connectors.GET("/:provider/status", h.Connector.Status)
			connectors.POST("/:provider/search", h.Connector.Search)
			connectors.POST("/:provider/sync", h.Sync.StartSync)
		}

		jobs := v1.Group("/sync-jobs")
		{
			jobs.GET("", h.Sync.ListJobs)
			jobs.GET("/:id", h.Sync.GetJob)
		}
	}

	return engine
}
