package models

import (
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProviderTokenModel is the persistence model for the ProviderToken domain entity
type ProviderTokenModel struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_provider_tokens_user_provider"`
	Provider    connector.Provider `gorm:"type:varchar(32);not null;index:idx_provider_tokens_user_provider"`
	AccessToken string             `gorm:"type:text;not null"`
	// No default tag: gorm skips zero-valued defaulted fields on write,
	// which would resurrect deactivated tokens. The column default lives
	// in the migration.
	IsActive   bool `gorm:"not null"`
	LastUsedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProviderTokenModel) TableName() string {
	return "provider_tokens"
}

// ToDomain converts the persistence model to a domain ProviderToken entity
func (m *ProviderTokenModel) ToDomain() *connector.ProviderToken {
	return &connector.ProviderToken{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID:      m.UserID,
		Provider:    m.Provider,
		AccessToken: m.AccessToken,
		IsActive:    m.IsActive,
		LastUsedAt:  m.LastUsedAt,
	}
}

// FromDomain populates the persistence model from a domain ProviderToken entity
func (m *ProviderTokenModel) FromDomain(t *connector.ProviderToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.Provider = t.Provider
	m.AccessToken = t.AccessToken
	m.IsActive = t.IsActive
	m.LastUsedAt = t.LastUsedAt
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// SyncJobModel is the persistence model for the SyncJob domain entity
type SyncJobModel struct {
	ID               uuid.UUID               `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID               `gorm:"type:uuid;not null;index:idx_sync_jobs_user"`
	Provider         connector.Provider      `gorm:"type:varchar(32);not null"`
	JobType          connector.SyncJobType   `gorm:"type:varchar(32);not null"`
	Status           connector.SyncJobStatus `gorm:"type:varchar(16);not null"`
	Progress         int                     `gorm:"not null"`
	ProcessedRecords int                     `gorm:"not null"`
	TotalRecords     *int
	ErrorMessage     string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncJobModel) TableName() string {
	return "sync_jobs"
}

// ToDomain converts the persistence model to a domain SyncJob entity
func (m *SyncJobModel) ToDomain() *connector.SyncJob {
	return &connector.SyncJob{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID:           m.UserID,
		Provider:         m.Provider,
		JobType:          m.JobType,
		Status:           m.Status,
		Progress:         m.Progress,
		ProcessedRecords: m.ProcessedRecords,
		TotalRecords:     m.TotalRecords,
		ErrorMessage:     m.ErrorMessage,
	}
}

// FromDomain populates the persistence model from a domain SyncJob entity
func (m *SyncJobModel) FromDomain(j *connector.SyncJob) {
	m.ID = j.ID
	m.UserID = j.UserID
	m.Provider = j.Provider
	m.JobType = j.JobType
	m.Status = j.Status
	m.Progress = j.Progress
	m.ProcessedRecords = j.ProcessedRecords
	m.TotalRecords = j.TotalRecords
	m.ErrorMessage = j.ErrorMessage
	m.CreatedAt = j.CreatedAt
	m.UpdatedAt = j.UpdatedAt
}
