package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	connectorapp "github.com/crm/backend/internal/application/connector"
	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/providers"
	"github.com/crm/backend/internal/infrastructure/ratelimit"
	"github.com/crm/backend/internal/infrastructure/worker"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Infrastructure
	searchCache := cache.NewSearchCache(cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Connector.CacheTTL, log)

	limiter := ratelimit.NewFixedWindowLimiter(cfg.Connector.RateLimitRequests, cfg.Connector.RateLimitWindow)
	defer limiter.Stop()

	registry := providers.NewRegistry(cfg.Connector.SearchTimeout, log)

	tokenRepo := persistence.NewGormProviderTokenRepository(db.DB)
	jobRepo := persistence.NewGormSyncJobRepository(db.DB)

	resolver := connectorapp.NewCredentialResolver(map[connector.Provider]string{
		connector.ProviderApollo:       cfg.Connector.ApolloAPIKey,
		connector.ProviderGooglePlaces: cfg.Connector.GooglePlacesAPIKey,
		connector.ProviderYelp:         cfg.Connector.YelpAPIKey,
		connector.ProviderHubSpot:      cfg.Connector.HubSpotAPIKey,
		connector.ProviderSalesforce:   cfg.Connector.SalesforceAPIKey,
	}, tokenRepo, log)

	// Application services
	searchService := connectorapp.NewSearchService(registry, resolver, searchCache, limiter, log)

	executor := connectorapp.NewSyncExecutor(jobRepo, registry, resolver, log)
	pool := worker.NewPool(worker.Config{
		Concurrency: cfg.Worker.Concurrency,
		QueueSize:   cfg.Worker.QueueSize,
		JobTimeout:  cfg.Worker.JobTimeout,
	}, executor, log)
	if err := pool.Start(context.Background()); err != nil {
		return fmt.Errorf("start worker pool: %w", err)
	}

	syncService := connectorapp.NewSyncService(jobRepo, pool, log)

	// HTTP layer
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.ExpirationHours)*time.Hour)

	base := handler.NewBaseHandler(log)
	engine := router.New(cfg, log, middleware.Identity(jwtService), router.Handlers{
		Health:    handler.NewHealthHandler(db, version, base),
		Connector: handler.NewConnectorHandler(searchService, base),
		Sync:      handler.NewSyncHandler(syncService, base),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("worker pool shutdown failed", zap.Error(err))
	}
	switch c := searchCache.(type) {
	case interface{ Stop() }:
		c.Stop()
	case interface{ Close() error }:
		_ = c.Close()
	}

	log.Info("server stopped")
	return nil
}
