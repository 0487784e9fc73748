package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncJobRepository implements SyncJobRepository using GORM
type GormSyncJobRepository struct {
	db *gorm.DB
}

// NewGormSyncJobRepository creates a new GormSyncJobRepository
func NewGormSyncJobRepository(db *gorm.DB) *GormSyncJobRepository {
	return &GormSyncJobRepository{db: db}
}

// Create persists a new job
func (r *GormSyncJobRepository) Create(ctx context.Context, job *connector.SyncJob) error {
	var model models.SyncJobModel
	model.FromDomain(job)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Save updates an existing job
func (r *GormSyncJobRepository) Save(ctx context.Context, job *connector.SyncJob) error {
	var model models.SyncJobModel
	model.FromDomain(job)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a job by ID
func (r *GormSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*connector.SyncJob, error) {
	var model models.SyncJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser lists a user's jobs, newest first, with optional filters
func (r *GormSyncJobRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter connector.SyncJobFilter) ([]*connector.SyncJob, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SyncJobModel{}).
		Where("user_id = ?", userID)

	if filter.Provider != nil {
		query = query.Where("provider = ?", *filter.Provider)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var jobModels []models.SyncJobModel
	if err := query.Order("created_at DESC").Find(&jobModels).Error; err != nil {
		return nil, 0, err
	}

	jobs := make([]*connector.SyncJob, len(jobModels))
	for i := range jobModels {
		jobs[i] = jobModels[i].ToDomain()
	}
	return jobs, total, nil
}

var _ connector.SyncJobRepository = (*GormSyncJobRepository)(nil)
