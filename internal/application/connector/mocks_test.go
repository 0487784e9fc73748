package connector

import (
	"context"
	"sync"

	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProviderTokenRepository is a mock implementation of ProviderTokenRepository
type MockProviderTokenRepository struct {
	mock.Mock
}

func (m *MockProviderTokenRepository) FindActive(ctx context.Context, userID uuid.UUID, provider connector.Provider) (*connector.ProviderToken, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connector.ProviderToken), args.Error(1)
}

func (m *MockProviderTokenRepository) Save(ctx context.Context, token *connector.ProviderToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockProviderTokenRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSyncJobRepository is a mock implementation of SyncJobRepository
type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) Create(ctx context.Context, job *connector.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) Save(ctx context.Context, job *connector.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*connector.SyncJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*connector.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter connector.SyncJobFilter) ([]*connector.SyncJob, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*connector.SyncJob), args.Get(1).(int64), args.Error(2)
}

// fakeClient is a canned provider client for façade tests
type fakeClient struct {
	provider connector.Provider
	records  []connector.RawRecord
	err      error
	lastCred *connector.Credential
	calls    int
}

func (c *fakeClient) Provider() connector.Provider { return c.provider }

func (c *fakeClient) Search(_ context.Context, _ connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	c.calls++
	c.lastCred = cred
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

// clientFunc adapts a function to the Client interface
type clientFunc struct {
	provider connector.Provider
	fn       func(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error)
}

func (c *clientFunc) Provider() connector.Provider { return c.provider }

func (c *clientFunc) Search(ctx context.Context, query connector.SearchQuery, cred *connector.Credential) ([]connector.RawRecord, error) {
	return c.fn(ctx, query, cred)
}

// ctxHonoringJobRepo refuses writes on a dead context, the way a real
// store would, and records the job status at each successful save
type ctxHonoringJobRepo struct {
	mu            sync.Mutex
	savedStatuses []connector.SyncJobStatus
}

func (r *ctxHonoringJobRepo) Create(ctx context.Context, job *connector.SyncJob) error {
	return r.Save(ctx, job)
}

func (r *ctxHonoringJobRepo) Save(ctx context.Context, job *connector.SyncJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.savedStatuses = append(r.savedStatuses, job.Status)
	return nil
}

func (r *ctxHonoringJobRepo) FindByID(ctx context.Context, id uuid.UUID) (*connector.SyncJob, error) {
	return nil, shared.ErrNotFound
}

func (r *ctxHonoringJobRepo) FindByUser(ctx context.Context, userID uuid.UUID, filter connector.SyncJobFilter) ([]*connector.SyncJob, int64, error) {
	return nil, 0, nil
}

// fakeRegistry serves a fixed client map
type fakeRegistry struct {
	clients map[connector.Provider]connector.Client
}

func (r *fakeRegistry) Client(provider connector.Provider) (connector.Client, error) {
	c, ok := r.clients[provider]
	if !ok {
		return nil, connector.ErrInvalidProvider
	}
	return c, nil
}

func (r *fakeRegistry) Clients() []connector.Client {
	out := make([]connector.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

// memoryCache is a minimal map-backed SearchCache for façade tests
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*connector.CacheEntry
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*connector.CacheEntry)}
}

func (c *memoryCache) Get(_ context.Context, provider connector.Provider, fingerprint string) (*connector.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[string(provider)+":"+fingerprint], nil
}

func (c *memoryCache) Put(_ context.Context, entry *connector.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[string(entry.Provider)+":"+entry.Fingerprint] = entry
	return nil
}

// fakeLimiter allows a fixed number of requests
type fakeLimiter struct {
	remaining int
}

func (l *fakeLimiter) Allow(_ connector.Provider, _ string) bool {
	if l.remaining <= 0 {
		return false
	}
	l.remaining--
	return true
}

// fakeRunner records submitted jobs
type fakeRunner struct {
	jobs []*connector.SyncJob
	err  error
}

func (r *fakeRunner) Submit(job *connector.SyncJob) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}
