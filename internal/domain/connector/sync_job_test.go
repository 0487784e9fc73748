package connector

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob(t *testing.T) *SyncJob {
	t.Helper()
	job, err := NewSyncJob(uuid.New(), ProviderHubSpot, SyncJobTypeContacts)
	require.NoError(t, err)
	return job
}

func TestNewSyncJob(t *testing.T) {
	job := newTestJob(t)

	assert.Equal(t, SyncJobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Nil(t, job.TotalRecords)
}

func TestNewSyncJob_InvalidProvider(t *testing.T) {
	_, err := NewSyncJob(uuid.New(), Provider("pipedrive"), SyncJobTypeContacts)
	assert.ErrorIs(t, err, ErrInvalidProvider)
}

func TestNewSyncJob_InvalidJobType(t *testing.T) {
	_, err := NewSyncJob(uuid.New(), ProviderApollo, SyncJobType("everything"))
	assert.Error(t, err)
}

func TestSyncJob_Lifecycle(t *testing.T) {
	job := newTestJob(t)

	require.NoError(t, job.Start())
	assert.Equal(t, SyncJobStatusRunning, job.Status)

	job.SetProgress(40, 80)
	assert.Equal(t, 40, job.Progress)
	assert.Equal(t, 80, job.ProcessedRecords)

	require.NoError(t, job.Complete())
	assert.Equal(t, SyncJobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
}

func TestSyncJob_CannotSkipRunning(t *testing.T) {
	job := newTestJob(t)
	assert.ErrorIs(t, job.Complete(), ErrJobInvalidTransition)
}

func TestSyncJob_CannotStartTwice(t *testing.T) {
	job := newTestJob(t)
	require.NoError(t, job.Start())
	assert.ErrorIs(t, job.Start(), ErrJobInvalidTransition)
}

func TestSyncJob_FailRequiresMessage(t *testing.T) {
	job := newTestJob(t)
	require.NoError(t, job.Start())

	assert.ErrorIs(t, job.Fail(""), ErrJobMissingError)
	assert.ErrorIs(t, job.Fail("   "), ErrJobMissingError)

	require.NoError(t, job.Fail("provider returned 500"))
	assert.Equal(t, SyncJobStatusFailed, job.Status)
	assert.Equal(t, "provider returned 500", job.ErrorMessage)
}

func TestSyncJob_TerminalStatesAreFinal(t *testing.T) {
	job := newTestJob(t)
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete())

	assert.ErrorIs(t, job.Fail("too late"), ErrJobInvalidTransition)
	assert.ErrorIs(t, job.Start(), ErrJobInvalidTransition)
}

func TestSyncJob_ProgressClamped(t *testing.T) {
	job := newTestJob(t)
	require.NoError(t, job.Start())

	job.SetProgress(150, 10)
	assert.Equal(t, 100, job.Progress)

	job.SetProgress(-5, 10)
	assert.Equal(t, 0, job.Progress)
}
