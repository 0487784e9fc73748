package connector

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CredentialSource indicates where a resolved credential came from
type CredentialSource string

const (
	// CredentialSourceEnvironment is a process-wide API key configured at startup
	CredentialSourceEnvironment CredentialSource = "environment"
	// CredentialSourceUserToken is a per-user token stored in the datastore
	CredentialSourceUserToken CredentialSource = "user_token"
)

// Credential is a resolved credential for one provider. Exactly one of
// APIKey or Token is populated, depending on Source. Resolution never
// mixes the two: an environment key short-circuits before any token
// lookup happens.
type Credential struct {
	Source Provider
	From   CredentialSource
	APIKey string
	Token  *ProviderToken
}

// Secret returns the usable secret regardless of credential source
func (c *Credential) Secret() string {
	if c.From == CredentialSourceUserToken && c.Token != nil {
		return c.Token.AccessToken
	}
	return c.APIKey
}

// ProviderToken is a per-user stored token for one provider. Created by
// the onboarding flow (out of scope here); this layer only reads it and
// touches LastUsedAt.
type ProviderToken struct {
	shared.BaseEntity
	UserID      uuid.UUID
	Provider    Provider
	AccessToken string
	IsActive    bool
	LastUsedAt  *time.Time
}

// MarkUsed records that the token was just used
func (t *ProviderToken) MarkUsed() {
	now := time.Now()
	t.LastUsedAt = &now
	t.UpdatedAt = now
}

// Deactivate disables the token without deleting it
func (t *ProviderToken) Deactivate() {
	t.IsActive = false
	t.Touch()
}

// ProviderTokenRepository defines the persistence contract for user tokens
type ProviderTokenRepository interface {
	// FindActive finds the active token for a user and provider.
	// Returns shared.ErrNotFound when no active token exists.
	FindActive(ctx context.Context, userID uuid.UUID, provider Provider) (*ProviderToken, error)

	// Save saves a token (create or update)
	Save(ctx context.Context, token *ProviderToken) error

	// TouchLastUsed updates only the token's LastUsedAt timestamp
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}
