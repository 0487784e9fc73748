package connector

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialResolver decides, per request, whether a provider call uses
// the process-wide environment key or the caller's stored token.
// Resolution order is strict: environment key, else active user token,
// else absent. The two sources are never consulted together.
type CredentialResolver struct {
	envKeys   map[connector.Provider]string
	tokenRepo connector.ProviderTokenRepository
	logger    *zap.Logger
}

// NewCredentialResolver creates a resolver. envKeys holds the
// environment-scoped API keys loaded at startup; empty values are
// treated as unconfigured.
func NewCredentialResolver(
	envKeys map[connector.Provider]string,
	tokenRepo connector.ProviderTokenRepository,
	logger *zap.Logger,
) *CredentialResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := make(map[connector.Provider]string, len(envKeys))
	for p, k := range envKeys {
		if k != "" {
			keys[p] = k
		}
	}
	return &CredentialResolver{
		envKeys:   keys,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// Resolve returns the credential for (provider, user), or nil when none
// exists. Absence is an expected outcome meaning "fall back to sample
// data", never an error. A uuid.Nil userID restricts resolution to the
// environment key.
//
// When a stored token is used its LastUsedAt is touched; this also
// happens through HasCredentials, which shares this path.
func (r *CredentialResolver) Resolve(ctx context.Context, provider connector.Provider, userID uuid.UUID) *connector.Credential {
	if key, ok := r.envKeys[provider]; ok {
		return &connector.Credential{
			Source: provider,
			From:   connector.CredentialSourceEnvironment,
			APIKey: key,
		}
	}

	if userID == uuid.Nil || r.tokenRepo == nil {
		return nil
	}

	token, err := r.tokenRepo.FindActive(ctx, userID, provider)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("token lookup failed, treating credential as absent",
				zap.String("provider", provider.String()),
				zap.Error(err),
			)
		}
		return nil
	}

	if err := r.tokenRepo.TouchLastUsed(ctx, token.ID); err != nil {
		r.logger.Warn("failed to touch token last_used_at",
			zap.String("provider", provider.String()),
			zap.Error(err),
		)
	}
	token.MarkUsed()

	return &connector.Credential{
		Source: provider,
		From:   connector.CredentialSourceUserToken,
		Token:  token,
	}
}

// HasCredentials reduces resolution to a boolean for preflight checks
// and status endpoints. It runs the same path as Resolve, so a stored
// token's LastUsedAt is still touched.
func (r *CredentialResolver) HasCredentials(ctx context.Context, provider connector.Provider, userID uuid.UUID) bool {
	return r.Resolve(ctx, provider, userID) != nil
}

// HasEnvironmentKey reports whether a process-wide key is configured
// for the provider. No I/O.
func (r *CredentialResolver) HasEnvironmentKey(provider connector.Provider) bool {
	_, ok := r.envKeys[provider]
	return ok
}

// HasUserToken reports whether the user has an active stored token for
// the provider. Unlike Resolve, this is a read-only probe used by the
// status endpoint to report both credential sources independently.
func (r *CredentialResolver) HasUserToken(ctx context.Context, provider connector.Provider, userID uuid.UUID) bool {
	if userID == uuid.Nil || r.tokenRepo == nil {
		return false
	}
	_, err := r.tokenRepo.FindActive(ctx, userID, provider)
	return err == nil
}
