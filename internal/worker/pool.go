// Package worker provides a bounded worker pool for running per-URL
// extraction jobs. Each job is independent; a slow or hung URL never stalls
// the others, and cancelling one job's context does not affect the rest.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yasi76/namesift/internal/logger"
)

const (
	// MinPoolSize is the minimum allowed pool size.
	MinPoolSize = 1
	// MaxPoolSize is the maximum allowed pool size.
	MaxPoolSize = 100
)

// Config holds configuration for the worker pool.
type Config struct {
	// PoolSize is the number of concurrent workers.
	PoolSize int
	// JobTimeout bounds the execution of a single job.
	JobTimeout time.Duration
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.PoolSize < MinPoolSize {
		return errors.New("pool size must be at least 1")
	}
	if c.PoolSize > MaxPoolSize {
		return fmt.Errorf("pool size cannot exceed %d", MaxPoolSize)
	}
	if c.JobTimeout <= 0 {
		return errors.New("job timeout must be positive")
	}
	return nil
}

// Job is one unit of work: a URL index and the function producing its
// result. The index lets the pool return results in input order.
type Job[T any] struct {
	Index int
	Run   func(ctx context.Context) (T, error)
}

// Pool executes jobs with bounded concurrency and per-job timeouts.
type Pool[T any] struct {
	config Config
	logger logger.Interface
	sem    chan struct{}

	// Stats
	totalJobsProcessed atomic.Int64
	totalJobsFailed    atomic.Int64
}

// NewPool creates a new worker pool.
func NewPool[T any](cfg Config, log logger.Interface) (*Pool[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pool[T]{
		config: cfg,
		logger: log.WithComponent("worker_pool"),
		sem:    make(chan struct{}, cfg.PoolSize),
	}, nil
}

// RunAll executes every job and returns results indexed by Job.Index.
// A job whose context deadline expires contributes its zero value and an
// error at its index. RunAll returns once all jobs finish or ctx is
// cancelled; cancellation stops dispatching but lets in-flight jobs drain.
func (p *Pool[T]) RunAll(ctx context.Context, jobs []Job[T]) ([]T, []error) {
	results := make([]T, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for _, job := range jobs {
		if ctx.Err() != nil {
			errs[job.Index] = ctx.Err()
			continue
		}

		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			errs[job.Index] = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(job Job[T]) {
			defer func() {
				<-p.sem
				wg.Done()
			}()

			jobCtx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
			defer cancel()

			start := time.Now()
			result, err := job.Run(jobCtx)

			p.totalJobsProcessed.Add(1)
			if err != nil {
				p.totalJobsFailed.Add(1)
				p.logger.Debug("job failed",
					"index", job.Index,
					"duration", time.Since(start),
					"error", err,
				)
			}

			results[job.Index] = result
			errs[job.Index] = err
		}(job)
	}

	wg.Wait()
	return results, errs
}

// Processed returns the number of jobs run so far.
func (p *Pool[T]) Processed() int64 { return p.totalJobsProcessed.Load() }

// Failed returns the number of jobs that returned an error.
func (p *Pool[T]) Failed() int64 { return p.totalJobsFailed.Load() }

// Size returns the pool size.
func (p *Pool[T]) Size() int { return p.config.PoolSize }
