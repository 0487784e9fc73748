package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

var (
	// ErrPoolNotRunning is returned when submitting a job to a stopped pool
	ErrPoolNotRunning = errors.New("worker pool is not running")

	// ErrQueueFull is returned when the job queue is full
	ErrQueueFull = errors.New("worker queue is full")
)

// Executor runs one sync job to a terminal state
type Executor interface {
	Execute(ctx context.Context, job *connector.SyncJob) error
}

// Config holds worker pool configuration
type Config struct {
	Concurrency int
	QueueSize   int
	JobTimeout  time.Duration
}

// DefaultConfig returns default worker pool configuration
func DefaultConfig() Config {
	return Config{
		Concurrency: 3,
		QueueSize:   100,
		JobTimeout:  30 * time.Minute,
	}
}

// Pool runs sync jobs on a fixed set of workers fed by a buffered
// channel. It implements the application layer's JobRunner contract.
type Pool struct {
	config   Config
	executor Executor
	logger   *zap.Logger

	jobs      chan *connector.SyncJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPool creates a new worker pool
func NewPool(config Config, executor Executor, logger *zap.Logger) *Pool {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultConfig().JobTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *connector.SyncJob, config.QueueSize),
	}
}

// Start starts the worker pool
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.config.Concurrency; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info("Sync worker pool started",
		zap.Int("workers", p.config.Concurrency),
		zap.Duration("job_timeout", p.config.JobTimeout),
	)
	return nil
}

// Stop gracefully stops the pool, waiting for in-flight jobs until ctx expires
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Sync worker pool stopped gracefully")
		return nil
	case <-ctx.Done():
		p.logger.Warn("Sync worker pool stop timed out")
		return ctx.Err()
	}
}

// Submit enqueues a job for background execution. The send happens
// under the mutex so it cannot race the channel close in Stop.
func (p *Pool) Submit(job *connector.SyncJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isRunning {
		return ErrPoolNotRunning
	}

	select {
	case p.jobs <- job:
		p.logger.Debug("Sync job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("provider", job.Provider.String()),
		)
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *Pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processJob(ctx, job, workerID)
		}
	}
}

func (p *Pool) processJob(ctx context.Context, job *connector.SyncJob, workerID int) {
	jobCtx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
	defer cancel()

	p.logger.Info("Processing sync job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("provider", job.Provider.String()),
		zap.String("job_type", string(job.JobType)),
	)

	if err := p.executor.Execute(jobCtx, job); err != nil {
		p.logger.Error("Sync job execution failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}
}
