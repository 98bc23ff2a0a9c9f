package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tabledash/tabledash/internal/domain/repository"
)

// GapSource exposes the subset of application functionality required by the reconciler.
type GapSource interface {
	AssignmentGaps(ctx context.Context, limit int) ([]repository.AssignmentGap, error)
}

// Reconciler periodically scans delivery assignment state for partially
// applied approvals and raises an alert for each finding. Approval is
// transactional, so every finding points at out-of-band data mutation.
type Reconciler struct {
	source       GapSource
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan repository.AssignmentGap
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconcile worker pool.
func NewReconciler(source GapSource, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		source:       source,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan repository.AssignmentGap, batchSize*workers),
	}
}

// Start launches background scanning.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	gaps, err := r.source.AssignmentGaps(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("assignment gap scan failed", slog.String("error", err.Error()))
		return
	}
	for _, gap := range gaps {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- gap:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case gap, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleGap(gap)
		}
	}
}

func (r *Reconciler) handleGap(gap repository.AssignmentGap) {
	r.logger.Error("delivery assignment inconsistency",
		slog.Int64("request_id", gap.RequestID),
		slog.Int64("order_id", gap.OrderID),
		slog.String("detail", gap.Detail),
	)
}
