package connector

import (
	"context"
	"fmt"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobRunner schedules a queued job for eventual background execution.
// The worker pool in the infrastructure layer implements it.
type JobRunner interface {
	Submit(job *connector.SyncJob) error
}

// SyncService creates and queries asynchronous bulk-fetch jobs. Job
// creation is synchronous and fast; the provider fetch itself runs
// detached, driven by the JobRunner.
type SyncService struct {
	jobRepo connector.SyncJobRepository
	runner  JobRunner
	logger  *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(jobRepo connector.SyncJobRepository, runner JobRunner, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		jobRepo: jobRepo,
		runner:  runner,
		logger:  logger,
	}
}

// StartSync creates a queued job and schedules it. The caller gets the
// job record back immediately; progress is observable via GetJob.
//
// Jobs for the same (user, provider) are not serialized; several may
// run concurrently.
func (s *SyncService) StartSync(ctx context.Context, userID uuid.UUID, provider connector.Provider, jobType connector.SyncJobType) (*connector.SyncJob, error) {
	job, err := connector.NewSyncJob(userID, provider, jobType)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create sync job: %w", err)
	}

	if err := s.runner.Submit(job); err != nil {
		// The job stays queued; a restart or retry sweep can pick it up.
		s.logger.Error("failed to schedule sync job",
			zap.String("job_id", job.ID.String()),
			zap.String("provider", provider.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("sync job queued",
		zap.String("job_id", job.ID.String()),
		zap.String("provider", provider.String()),
		zap.String("job_type", string(jobType)),
	)
	return job, nil
}

// GetJob fetches one job, enforcing ownership: a job belonging to a
// different user is reported as forbidden, not as absent.
func (s *SyncService) GetJob(ctx context.Context, userID, jobID uuid.UUID) (*connector.SyncJob, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, connector.ErrJobForbidden
	}
	return job, nil
}

// ListJobs lists the user's jobs, newest first, optionally filtered by
// provider, with limit/offset pagination.
func (s *SyncService) ListJobs(ctx context.Context, userID uuid.UUID, filter connector.SyncJobFilter) ([]*connector.SyncJob, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.jobRepo.FindByUser(ctx, userID, filter)
}
