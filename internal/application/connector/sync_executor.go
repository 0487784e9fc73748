package connector

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

// progressStep is how many records are processed between persisted
// progress updates.
const progressStep = 1

// failSaveTimeout bounds the terminal-state write on the fail path,
// which runs on a detached context.
const failSaveTimeout = 10 * time.Second

// SyncExecutor performs the provider fetch for one sync job. It is
// invoked by the worker pool, detached from the request that created
// the job, and mutates job state as it goes. Once started, a job runs
// to completion or failure; there is no cancellation beyond the
// worker's per-job timeout.
type SyncExecutor struct {
	jobRepo  connector.SyncJobRepository
	registry connector.Registry
	resolver *CredentialResolver
	logger   *zap.Logger
}

// NewSyncExecutor creates a new SyncExecutor
func NewSyncExecutor(
	jobRepo connector.SyncJobRepository,
	registry connector.Registry,
	resolver *CredentialResolver,
	logger *zap.Logger,
) *SyncExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncExecutor{
		jobRepo:  jobRepo,
		registry: registry,
		resolver: resolver,
		logger:   logger,
	}
}

// Execute runs the job to a terminal state. The error return is for
// the worker's logging; job state itself always ends terminal.
func (e *SyncExecutor) Execute(ctx context.Context, job *connector.SyncJob) error {
	if err := job.Start(); err != nil {
		return err
	}
	if err := e.jobRepo.Save(ctx, job); err != nil {
		return err
	}

	records, err := e.fetch(ctx, job)
	if err != nil {
		return e.fail(ctx, job, err)
	}

	total := len(records)
	job.SetTotal(total)

	for i := range records {
		if err := ctx.Err(); err != nil {
			return e.fail(ctx, job, err)
		}
		processed := i + 1
		if processed%progressStep == 0 || processed == total {
			progress := 0
			if total > 0 {
				progress = processed * 100 / total
			}
			job.SetProgress(progress, processed)
			if err := e.jobRepo.Save(ctx, job); err != nil {
				return e.fail(ctx, job, err)
			}
		}
	}

	if err := job.Complete(); err != nil {
		return err
	}
	if err := e.jobRepo.Save(ctx, job); err != nil {
		return err
	}

	e.logger.Info("sync job completed",
		zap.String("job_id", job.ID.String()),
		zap.String("provider", job.Provider.String()),
		zap.Int("records", total),
	)
	return nil
}

// fetch pulls the records the job is responsible for. The bulk query
// is the job type itself; clients degrade to their sample set when no
// credential is configured.
func (e *SyncExecutor) fetch(ctx context.Context, job *connector.SyncJob) ([]connector.NormalizedResult, error) {
	client, err := e.registry.Client(job.Provider)
	if err != nil {
		return nil, err
	}

	cred := e.resolver.Resolve(ctx, job.Provider, job.UserID)

	raw, err := client.Search(ctx, connector.SearchQuery{
		Provider: job.Provider,
		Query:    string(job.JobType),
	}, cred)
	if err != nil {
		return nil, err
	}

	return Normalize(job.Provider, raw), nil
}

func (e *SyncExecutor) fail(ctx context.Context, job *connector.SyncJob, cause error) error {
	if err := job.Fail(cause.Error()); err != nil {
		e.logger.Error("could not mark sync job failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return cause
	}

	// The job context may already be cancelled or timed out, and that
	// is often the very reason we are failing. The terminal state must
	// still reach the store or the job stays running forever.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failSaveTimeout)
	defer cancel()

	if err := e.jobRepo.Save(saveCtx, job); err != nil {
		e.logger.Error("could not persist failed sync job",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}
	e.logger.Warn("sync job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("provider", job.Provider.String()),
		zap.Error(cause),
	)
	return cause
}
