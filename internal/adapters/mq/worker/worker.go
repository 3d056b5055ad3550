// Package worker defines worker contracts for asynchronous
// recommendation refreshes.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/planora/planora/internal/domain/model"
	"github.com/planora/planora/internal/domain/types"
	"github.com/planora/planora/pkg/logger"
	"github.com/planora/planora/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	defaultRefreshLimit     = 10
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
type Job = model.RefreshJob

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Dependencies is everything a refresh needs: catalog reads, the
// recommendation computation, the cache write and the release of the
// job's dedupe slot. The application service provides an adapter.
type Dependencies interface {
	// Event loads the event a job refers to.
	Event(ctx context.Context, id string) (*model.Event, error)
	// Suppliers loads the full candidate pool.
	Suppliers(ctx context.Context) ([]*model.Supplier, error)
	// Recommend runs the scoring engine and returns the ranked view.
	Recommend(ctx context.Context, event *model.Event, suppliers []*model.Supplier, limit int) []types.Recommendation
	// PutRecommendations caches the computed result for the event.
	PutRecommendations(ctx context.Context, eventID string, recs []types.Recommendation) error
	// Release frees the job's dedupe slot so later edits can re-enqueue.
	Release(ctx context.Context, id string)
}

// Worker processes refresh jobs using the provided dependencies.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// RefreshWorker implements Worker for recommendation refresh jobs.
type RefreshWorker struct {
	queue        Queue
	deps         Dependencies
	name         string
	refreshLimit int

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewRefreshWorker creates a new worker with configuration options.
func NewRefreshWorker(queue Queue, deps Dependencies, opts ...Option) *RefreshWorker {
	w := &RefreshWorker{
		queue:        queue,
		deps:         deps,
		name:         "worker",
		refreshLimit: defaultRefreshLimit,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
		logger:       logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *RefreshWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "refresh failed", logger.String("eventID", job.EventID), logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob recomputes and caches recommendations for one event.
// The dedupe slot is released whatever the outcome, so a failed refresh
// can be retried by the next mutation.
func (w *RefreshWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordRefreshLatency(float64(time.Since(start).Milliseconds()))
		w.deps.Release(ctx, job.EventID)
	}()

	event, err := w.deps.Event(ctx, job.EventID)
	if err != nil {
		// The event may have been deleted while the job was queued.
		metrics.RecordRefreshError()
		return fmt.Errorf("load event %s: %w", job.EventID, err)
	}

	suppliers, err := w.deps.Suppliers(ctx)
	if err != nil {
		metrics.RecordRefreshError()
		return fmt.Errorf("load suppliers: %w", err)
	}

	recs := w.deps.Recommend(ctx, event, suppliers, w.refreshLimit)
	if err := w.deps.PutRecommendations(ctx, event.ID, recs); err != nil {
		metrics.RecordRefreshError()
		return fmt.Errorf("cache recommendations for %s: %w", event.ID, err)
	}

	metrics.RecordRefreshProcessed()
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*RefreshWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, deps Dependencies, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*RefreshWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewRefreshWorker(
			queue,
			deps,
			append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)...,
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for the workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
