package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of work executed by the pool.
type Task func(ctx context.Context) error

// PoolConfig configures worker behaviour.
type PoolConfig struct {
	Workers int
	Logger  *zap.Logger
}

// Pool fans a batch of independent tasks out over a fixed set of goroutines.
// Tasks share no state, so one task's failure never stops the others; the
// caller receives every error in task order.
type Pool struct {
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool with the provided configuration.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{workers: cfg.Workers, logger: cfg.Logger}
}

// Run executes all tasks and returns a slice of errors aligned with the
// task slice. A nil entry means the task succeeded. Run returns once every
// task has finished or been skipped due to context cancellation.
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				if err := tasks[i](ctx); err != nil {
					p.logger.Debug("task failed", zap.Int("index", i), zap.Error(err))
					errs[i] = err
				}
			}
		}()
	}

	for i := range tasks {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return errs
}
