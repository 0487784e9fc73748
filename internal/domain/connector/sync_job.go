package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SyncJobType represents the kind of bulk fetch a job performs
type SyncJobType string

const (
	SyncJobTypeContacts   SyncJobType = "contacts"
	SyncJobTypeCompanies  SyncJobType = "companies"
	SyncJobTypeFullImport SyncJobType = "full_import"
)

// IsValid checks if the job type is valid
func (t SyncJobType) IsValid() bool {
	switch t {
	case SyncJobTypeContacts, SyncJobTypeCompanies, SyncJobTypeFullImport:
		return true
	}
	return false
}

// SyncJobStatus represents the status of a sync job
type SyncJobStatus string

const (
	SyncJobStatusQueued    SyncJobStatus = "queued"
	SyncJobStatusRunning   SyncJobStatus = "running"
	SyncJobStatusCompleted SyncJobStatus = "completed"
	SyncJobStatusFailed    SyncJobStatus = "failed"
)

// IsValid checks if the status is valid
func (s SyncJobStatus) IsValid() bool {
	switch s {
	case SyncJobStatusQueued, SyncJobStatusRunning, SyncJobStatusCompleted, SyncJobStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s SyncJobStatus) IsTerminal() bool {
	return s == SyncJobStatusCompleted || s == SyncJobStatusFailed
}

// SyncJob tracks one asynchronous bulk fetch against a provider.
// Lifecycle: queued -> running -> completed | failed. Creation returns
// immediately; the fetch itself runs out of band.
type SyncJob struct {
	shared.BaseEntity
	UserID           uuid.UUID
	Provider         Provider
	JobType          SyncJobType
	Status           SyncJobStatus
	Progress         int
	ProcessedRecords int
	TotalRecords     *int
	ErrorMessage     string
}

// NewSyncJob creates a queued sync job
func NewSyncJob(userID uuid.UUID, provider Provider, jobType SyncJobType) (*SyncJob, error) {
	if !provider.IsValid() {
		return nil, ErrInvalidProvider
	}
	if !jobType.IsValid() {
		return nil, shared.NewDomainError("INVALID_JOB_TYPE", fmt.Sprintf("Invalid sync job type: %s", jobType))
	}

	return &SyncJob{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Provider:   provider,
		JobType:    jobType,
		Status:     SyncJobStatusQueued,
		Progress:   0,
	}, nil
}

// Start marks the job as running
func (j *SyncJob) Start() error {
	if j.Status != SyncJobStatusQueued {
		return ErrJobInvalidTransition
	}
	j.Status = SyncJobStatusRunning
	j.Touch()
	return nil
}

// Complete marks the job as completed; progress is forced to 100
func (j *SyncJob) Complete() error {
	if j.Status != SyncJobStatusRunning {
		return ErrJobInvalidTransition
	}
	j.Status = SyncJobStatusCompleted
	j.Progress = 100
	j.Touch()
	return nil
}

// Fail marks the job as failed; a non-empty message is mandatory
func (j *SyncJob) Fail(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrJobMissingError
	}
	if j.Status.IsTerminal() {
		return ErrJobInvalidTransition
	}
	j.Status = SyncJobStatusFailed
	j.ErrorMessage = message
	j.Touch()
	return nil
}

// SetProgress updates progress, clamped to [0,100]
func (j *SyncJob) SetProgress(progress, processed int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	j.Progress = progress
	if processed >= 0 {
		j.ProcessedRecords = processed
	}
	j.Touch()
}

// SetTotal records the expected record count once known
func (j *SyncJob) SetTotal(total int) {
	j.TotalRecords = &total
	j.Touch()
}

// SyncJobFilter defines the filters for listing sync jobs
type SyncJobFilter struct {
	Provider *Provider
	Status   *SyncJobStatus
	Limit    int
	Offset   int
}

// SyncJobRepository defines the persistence contract for sync jobs
type SyncJobRepository interface {
	// Create persists a new job
	Create(ctx context.Context, job *SyncJob) error

	// Save updates an existing job
	Save(ctx context.Context, job *SyncJob) error

	// FindByID finds a job by ID. Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*SyncJob, error)

	// FindByUser lists a user's jobs, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter SyncJobFilter) ([]*SyncJob, int64, error)
}
