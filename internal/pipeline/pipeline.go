// Package pipeline wires the extraction stages together: fetch, generate,
// filter, score, merge, and optionally evaluate against ground truth. A
// pipeline run is stateless per URL, so any number of URLs can run
// concurrently over the same Pipeline.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/extract"
	"github.com/yasi76/namesift/internal/fetch"
	"github.com/yasi76/namesift/internal/filter"
	"github.com/yasi76/namesift/internal/groundtruth"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/merge"
	"github.com/yasi76/namesift/internal/score"
)

// Stats accumulates filter rejections across a batch, keyed by stage name.
// Safe for concurrent use.
type Stats struct {
	mu         sync.Mutex
	rejections map[string]int
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{rejections: make(map[string]int)}
}

func (s *Stats) reject(stage string) {
	s.mu.Lock()
	s.rejections[stage]++
	s.mu.Unlock()
}

// Rejections returns a copy of the per-stage rejection counts.
func (s *Stats) Rejections() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.rejections))
	for k, v := range s.rejections {
		out[k] = v
	}
	return out
}

// Pipeline runs the full extraction sequence for one URL at a time.
type Pipeline struct {
	fetcher   fetch.Fetcher
	generator *extract.Generator
	filter    *filter.Filter
	scorer    *score.Scorer
	merger    *merge.Merger
	matcher   *groundtruth.Matcher
	stats     *Stats
	log       logger.Interface
}

// New builds a Pipeline. matcher may be nil when no ground truth is
// supplied; stats may be nil when rejection counting is not wanted.
func New(
	cfg *config.Config,
	fetcher fetch.Fetcher,
	matcher *groundtruth.Matcher,
	stats *Stats,
	log logger.Interface,
) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		generator: extract.NewGenerator(cfg.Pipeline, log),
		filter:    filter.New(cfg.Pipeline),
		scorer:    score.New(cfg.Pipeline),
		merger:    merge.New(cfg.Pipeline),
		matcher:   matcher,
		stats:     stats,
		log:       log.WithComponent("pipeline"),
	}
}

// Run fetches one URL and extracts its entities. Fetch failures do not
// propagate: the result records the failure kind and an empty entity list
// so the batch continues.
func (p *Pipeline) Run(ctx context.Context, url string) *entity.ExtractionResult {
	page, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		kind := entity.FailureNetwork
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			kind = fetchErr.Kind
		} else if errors.Is(err, context.DeadlineExceeded) {
			kind = entity.FailureTimeout
		}

		p.log.Warn("no content available", "url", url, "failure", string(kind), "error", err)

		result := &entity.ExtractionResult{
			URL:       url,
			Failure:   kind,
			FetchedAt: time.Now().UTC(),
		}
		p.evaluate(result)
		return result
	}

	return p.Extract(page)
}

// Extract runs the content stages over an already-fetched page.
func (p *Pipeline) Extract(page *entity.PageContent) *entity.ExtractionResult {
	candidates := p.generator.Generate(page)

	valid := candidates[:0]
	for _, c := range candidates {
		ok, stage := p.filter.Validate(c)
		if !ok {
			if p.stats != nil {
				p.stats.reject(stage)
			}
			p.log.Debug("candidate rejected",
				"url", page.URL, "text", c.Text, "stage", stage)
			continue
		}
		valid = append(valid, c)
	}

	for i := range valid {
		valid[i].Confidence = p.scorer.Score(valid[i])
	}

	result := &entity.ExtractionResult{
		URL:       page.URL,
		Entities:  p.merger.Merge(valid),
		FetchedAt: page.FetchedAt,
	}
	p.evaluate(result)

	return result
}

// evaluate cross-checks the result against ground truth when available.
func (p *Pipeline) evaluate(result *entity.ExtractionResult) {
	if p.matcher == nil {
		return
	}

	found, missed := p.matcher.Evaluate(result.URL, result.Entities)
	result.GroundTruthFound = found
	result.GroundTruthMiss = missed
}
