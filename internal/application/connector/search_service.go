package connector

import (
	"context"
	"fmt"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchService is the aggregation façade for synchronous provider
// searches. It owns the request pipeline: provider validation,
// fingerprinting, cache lookup, rate limiting, credential resolution,
// dispatch, normalization and cache population.
type SearchService struct {
	registry connector.Registry
	resolver *CredentialResolver
	cache    connector.SearchCache
	limiter  connector.RateLimiter
	logger   *zap.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	registry connector.Registry,
	resolver *CredentialResolver,
	cache connector.SearchCache,
	limiter connector.RateLimiter,
	logger *zap.Logger,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		registry: registry,
		resolver: resolver,
		cache:    cache,
		limiter:  limiter,
		logger:   logger,
	}
}

// Search runs one synchronous provider search. userID may be uuid.Nil
// for callers with no personal tokens (environment credentials only).
//
// Rate-limited and invalid requests never reach the cache or the
// provider; a denied request therefore never populates the cache.
func (s *SearchService) Search(ctx context.Context, userID uuid.UUID, req SearchRequest) (*SearchResponse, error) {
	if !req.Provider.IsValid() {
		return nil, connector.ErrInvalidProvider
	}

	query := connector.SearchQuery{
		Provider: req.Provider,
		Query:    req.Query,
		Filters:  req.Filters,
		Location: req.Location,
	}
	fingerprint := Fingerprint(query)

	if entry, err := s.cache.Get(ctx, req.Provider, fingerprint); err != nil {
		s.logger.Warn("cache lookup failed, continuing without cache",
			zap.String("provider", req.Provider.String()),
			zap.Error(err),
		)
	} else if entry != nil {
		return &SearchResponse{
			Data:   entry.Results,
			Source: req.Provider,
			Cached: true,
		}, nil
	}

	if !s.limiter.Allow(req.Provider, userID.String()) {
		return nil, connector.ErrRateLimited
	}

	// Credential resolution only annotates the response. The client
	// itself degrades to sample data when cred is nil.
	cred := s.resolver.Resolve(ctx, req.Provider, userID)

	client, err := s.registry.Client(req.Provider)
	if err != nil {
		return nil, err
	}

	raw, err := client.Search(ctx, query, cred)
	if err != nil {
		s.logger.Error("provider search failed",
			zap.String("provider", req.Provider.String()),
			zap.Error(err),
		)
		return nil, err
	}

	results := Normalize(req.Provider, raw)

	if err := s.cache.Put(ctx, &connector.CacheEntry{
		Provider:    req.Provider,
		Fingerprint: fingerprint,
		Query:       req.Query,
		Results:     results,
	}); err != nil {
		s.logger.Warn("failed to cache search results",
			zap.String("provider", req.Provider.String()),
			zap.Error(err),
		)
	}

	resp := &SearchResponse{
		Data:          results,
		Source:        req.Provider,
		UsingMockData: cred == nil,
	}
	if cred == nil {
		resp.Message = fmt.Sprintf(
			"Showing sample data. Configure %s credentials to search live data.",
			req.Provider.DisplayName(),
		)
	}
	return resp, nil
}

// Status reports credential configuration for one provider
func (s *SearchService) Status(ctx context.Context, userID uuid.UUID, provider connector.Provider) (*ProviderStatus, error) {
	if !provider.IsValid() {
		return nil, connector.ErrInvalidProvider
	}

	hasEnv := s.resolver.HasEnvironmentKey(provider)
	hasToken := s.resolver.HasUserToken(ctx, provider, userID)
	configured := hasEnv || hasToken

	status := "not_configured"
	if configured {
		status = "active"
	}

	return &ProviderStatus{
		Provider:          provider,
		DisplayName:       provider.DisplayName(),
		Configured:        configured,
		HasEnvironmentKey: hasEnv,
		HasUserToken:      hasToken,
		Status:            status,
	}, nil
}

// StatusAll reports credential configuration for every supported provider
func (s *SearchService) StatusAll(ctx context.Context, userID uuid.UUID) []ProviderStatus {
	providers := connector.AllProviders()
	statuses := make([]ProviderStatus, 0, len(providers))
	for _, p := range providers {
		status, err := s.Status(ctx, userID, p)
		if err != nil {
			continue
		}
		statuses = append(statuses, *status)
	}
	return statuses
}
