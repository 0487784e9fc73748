package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProviderTokenRepository implements ProviderTokenRepository using GORM
type GormProviderTokenRepository struct {
	db *gorm.DB
}

// NewGormProviderTokenRepository creates a new GormProviderTokenRepository
func NewGormProviderTokenRepository(db *gorm.DB) *GormProviderTokenRepository {
	return &GormProviderTokenRepository{db: db}
}

// FindActive finds the active token for a user and provider
func (r *GormProviderTokenRepository) FindActive(ctx context.Context, userID uuid.UUID, provider connector.Provider) (*connector.ProviderToken, error) {
	var model models.ProviderTokenModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider = ? AND is_active = ?", userID, provider, true).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save saves a token (create or update)
func (r *GormProviderTokenRepository) Save(ctx context.Context, token *connector.ProviderToken) error {
	var model models.ProviderTokenModel
	model.FromDomain(token)
	return r.db.WithContext(ctx).Save(&model).Error
}

// TouchLastUsed updates only the token's LastUsedAt timestamp
func (r *GormProviderTokenRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProviderTokenModel{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

var _ connector.ProviderTokenRepository = (*GormProviderTokenRepository)(nil)
