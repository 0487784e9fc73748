package connector

import (
	"context"
	"errors"
	"testing"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncService_StartSync(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a queued job and schedules it", func(t *testing.T) {
		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("Create", ctx, mock.AnythingOfType("*connector.SyncJob")).Return(nil)
		runner := &fakeRunner{}

		svc := NewSyncService(jobRepo, runner, nil)
		job, err := svc.StartSync(ctx, userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)

		require.NoError(t, err)
		assert.Equal(t, connector.SyncJobStatusQueued, job.Status)
		assert.Equal(t, 0, job.Progress)
		assert.Len(t, runner.jobs, 1)
		jobRepo.AssertExpectations(t)
	})

	t.Run("rejects an invalid provider", func(t *testing.T) {
		svc := NewSyncService(new(MockSyncJobRepository), &fakeRunner{}, nil)
		_, err := svc.StartSync(ctx, userID, connector.Provider("linkedin"), connector.SyncJobTypeContacts)
		assert.ErrorIs(t, err, connector.ErrInvalidProvider)
	})

	t.Run("rejects an invalid job type", func(t *testing.T) {
		svc := NewSyncService(new(MockSyncJobRepository), &fakeRunner{}, nil)
		_, err := svc.StartSync(ctx, userID, connector.ProviderHubSpot, connector.SyncJobType("everything"))
		assert.Error(t, err)
	})

	t.Run("scheduling failure leaves the job queued", func(t *testing.T) {
		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("Create", ctx, mock.AnythingOfType("*connector.SyncJob")).Return(nil)
		runner := &fakeRunner{err: errors.New("queue full")}

		svc := NewSyncService(jobRepo, runner, nil)
		_, err := svc.StartSync(ctx, userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)
		assert.Error(t, err)
	})
}

func TestSyncService_GetJob(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("owner can read the job", func(t *testing.T) {
		job, err := connector.NewSyncJob(owner, connector.ProviderSalesforce, connector.SyncJobTypeFullImport)
		require.NoError(t, err)

		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

		svc := NewSyncService(jobRepo, &fakeRunner{}, nil)
		got, err := svc.GetJob(ctx, owner, job.ID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
	})

	t.Run("other users are forbidden, not told absent", func(t *testing.T) {
		job, err := connector.NewSyncJob(owner, connector.ProviderSalesforce, connector.SyncJobTypeFullImport)
		require.NoError(t, err)

		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("FindByID", ctx, job.ID).Return(job, nil)

		svc := NewSyncService(jobRepo, &fakeRunner{}, nil)
		_, err = svc.GetJob(ctx, uuid.New(), job.ID)
		assert.ErrorIs(t, err, connector.ErrJobForbidden)
	})
}

func TestSyncService_ListJobs(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults pagination", func(t *testing.T) {
		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("FindByUser", ctx, userID, connector.SyncJobFilter{Limit: 20, Offset: 0}).
			Return([]*connector.SyncJob{}, int64(0), nil)

		svc := NewSyncService(jobRepo, &fakeRunner{}, nil)
		_, _, err := svc.ListJobs(ctx, userID, connector.SyncJobFilter{Limit: -5, Offset: -1})
		require.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("caps oversized limits", func(t *testing.T) {
		jobRepo := new(MockSyncJobRepository)
		jobRepo.On("FindByUser", ctx, userID, connector.SyncJobFilter{Limit: 20, Offset: 40}).
			Return([]*connector.SyncJob{}, int64(0), nil)

		svc := NewSyncService(jobRepo, &fakeRunner{}, nil)
		_, _, err := svc.ListJobs(ctx, userID, connector.SyncJobFilter{Limit: 500, Offset: 40})
		require.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})
}

func TestSyncExecutor_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	sample := []connector.RawRecord{
		{"id": "hs-1", "properties": map[string]any{"firstname": "Ada", "lastname": "Lovelace"}},
		{"id": "hs-2", "properties": map[string]any{"firstname": "Alan", "lastname": "Turing"}},
	}

	newExecutorFixture := func(client *fakeClient) (*SyncExecutor, *MockSyncJobRepository) {
		jobRepo := new(MockSyncJobRepository)
		registry := &fakeRegistry{clients: map[connector.Provider]connector.Client{
			client.provider: client,
		}}
		resolver := NewCredentialResolver(nil, nil, nil)
		return NewSyncExecutor(jobRepo, registry, resolver, nil), jobRepo
	}

	t.Run("runs the job to completion", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderHubSpot, records: sample}
		executor, jobRepo := newExecutorFixture(client)
		jobRepo.On("Save", ctx, mock.AnythingOfType("*connector.SyncJob")).Return(nil)

		job, err := connector.NewSyncJob(userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)
		require.NoError(t, err)

		require.NoError(t, executor.Execute(ctx, job))
		assert.Equal(t, connector.SyncJobStatusCompleted, job.Status)
		assert.Equal(t, 100, job.Progress)
		assert.Equal(t, 2, job.ProcessedRecords)
		require.NotNil(t, job.TotalRecords)
		assert.Equal(t, 2, *job.TotalRecords)
	})

	t.Run("provider error fails the job with a message", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderHubSpot, err: connector.ErrProviderError}
		executor, jobRepo := newExecutorFixture(client)
		// The terminal write on the fail path runs on a detached context.
		jobRepo.On("Save", mock.Anything, mock.AnythingOfType("*connector.SyncJob")).Return(nil)

		job, err := connector.NewSyncJob(userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)
		require.NoError(t, err)

		assert.Error(t, executor.Execute(ctx, job))
		assert.Equal(t, connector.SyncJobStatusFailed, job.Status)
		assert.NotEmpty(t, job.ErrorMessage)
	})

	t.Run("cancellation mid-fetch still persists the failed state", func(t *testing.T) {
		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		client := &clientFunc{
			provider: connector.ProviderHubSpot,
			fn: func(ctx context.Context, _ connector.SearchQuery, _ *connector.Credential) ([]connector.RawRecord, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		jobRepo := &ctxHonoringJobRepo{}
		registry := &fakeRegistry{clients: map[connector.Provider]connector.Client{
			connector.ProviderHubSpot: client,
		}}
		executor := NewSyncExecutor(jobRepo, registry, NewCredentialResolver(nil, nil, nil), nil)

		job, err := connector.NewSyncJob(userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)
		require.NoError(t, err)

		assert.Error(t, executor.Execute(runCtx, job))
		assert.Equal(t, connector.SyncJobStatusFailed, job.Status)
		require.NotEmpty(t, jobRepo.savedStatuses)
		assert.Equal(t, connector.SyncJobStatusFailed, jobRepo.savedStatuses[len(jobRepo.savedStatuses)-1])
	})

	t.Run("cannot execute a job twice", func(t *testing.T) {
		client := &fakeClient{provider: connector.ProviderHubSpot, records: sample}
		executor, jobRepo := newExecutorFixture(client)
		jobRepo.On("Save", ctx, mock.AnythingOfType("*connector.SyncJob")).Return(nil)

		job, err := connector.NewSyncJob(userID, connector.ProviderHubSpot, connector.SyncJobTypeContacts)
		require.NoError(t, err)

		require.NoError(t, executor.Execute(ctx, job))
		assert.ErrorIs(t, executor.Execute(ctx, job), connector.ErrJobInvalidTransition)
	})
}
