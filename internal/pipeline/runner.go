package pipeline

import (
	"context"
	"time"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/worker"
)

// Runner executes a batch of URLs over a bounded worker pool, preserving
// input order in the output.
type Runner struct {
	pipeline *Pipeline
	pool     *worker.Pool[*entity.ExtractionResult]
	log      logger.Interface
}

// NewRunner creates a batch runner sized from the workers configuration.
func NewRunner(cfg *config.Config, p *Pipeline, log logger.Interface) (*Runner, error) {
	pool, err := worker.NewPool[*entity.ExtractionResult](worker.Config{
		PoolSize:   cfg.Workers.PoolSize,
		JobTimeout: cfg.Workers.JobTimeout,
	}, log)
	if err != nil {
		return nil, err
	}

	return &Runner{pipeline: p, pool: pool, log: log.WithComponent("runner")}, nil
}

// Run processes every URL and returns one result per input, in input
// order. A URL whose job timed out or was cancelled still yields a result,
// marked as a timeout failure.
func (r *Runner) Run(ctx context.Context, urls []string) []*entity.ExtractionResult {
	jobs := make([]worker.Job[*entity.ExtractionResult], len(urls))
	for i, url := range urls {
		jobs[i] = worker.Job[*entity.ExtractionResult]{
			Index: i,
			Run: func(jobCtx context.Context) (*entity.ExtractionResult, error) {
				return r.pipeline.Run(jobCtx, url), nil
			},
		}
	}

	start := time.Now()
	results, errs := r.pool.RunAll(ctx, jobs)

	for i := range results {
		if results[i] == nil {
			// Job never ran (batch cancelled before dispatch).
			results[i] = &entity.ExtractionResult{
				URL:       urls[i],
				Failure:   entity.FailureTimeout,
				FetchedAt: time.Now().UTC(),
			}
			if errs[i] != nil {
				r.log.Warn("job not run", "url", urls[i], "error", errs[i])
			}
		}
	}

	r.log.Info("batch finished",
		"urls", len(urls),
		"duration", time.Since(start),
		"failed", r.pool.Failed(),
	)

	return results
}
