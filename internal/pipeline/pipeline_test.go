package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi76/namesift/internal/config"
	"github.com/yasi76/namesift/internal/entity"
	"github.com/yasi76/namesift/internal/fetch"
	"github.com/yasi76/namesift/internal/groundtruth"
	"github.com/yasi76/namesift/internal/logger"
	"github.com/yasi76/namesift/internal/pipeline"
	"github.com/yasi76/namesift/testutils"
)

const kranusPage = `<html><head>
	<title>Kranus Health | Digitale Therapien</title>
	<meta property="og:site_name" content="Kranus Health">
	<script type="application/ld+json">
		{"@graph":[
			{"@type":"MedicalOrganization","name":"Kranus Health GmbH"},
			{"@type":"MedicalDevice","name":"Kranus Edera"}
		]}
	</script>
</head><body>
	<nav><h2>Products</h2></nav>
	<main>
		<h1>Kranus Edera</h1>
		<h2>Why choose us</h2>
	</main>
</body></html>`

func newPipeline(t *testing.T, fetcher fetch.Fetcher, matcher *groundtruth.Matcher, stats *pipeline.Stats) *pipeline.Pipeline {
	t.Helper()
	return pipeline.New(config.Default(), fetcher, matcher, stats, logger.NewNoOp())
}

func TestRunExtractsAndMerges(t *testing.T) {
	t.Parallel()

	url := "https://kranushealth.com"
	fetcher := &testutils.StaticFetcher{Pages: map[string]string{url: kranusPage}}
	p := newPipeline(t, fetcher, nil, nil)

	result := p.Run(context.Background(), url)

	require.NotNil(t, result)
	assert.Equal(t, url, result.URL)
	assert.Equal(t, entity.FailureNone, result.Failure)
	require.NotEmpty(t, result.Entities)

	texts := make(map[string]entity.Candidate, len(result.Entities))
	for _, e := range result.Entities {
		texts[e.Text] = e
	}
	assert.Contains(t, texts, "Kranus Health GmbH")
	assert.Contains(t, texts, "Kranus Edera")
	assert.NotContains(t, texts, "Why choose us", "slogans must be filtered out")
	assert.NotContains(t, texts, "Products", "nav chrome must be filtered out")

	// The JSON-LD device and the h1 name the same product; merging must
	// leave a single entry for it.
	var ederaCount int
	for _, e := range result.Entities {
		if e.Text == "Kranus Edera" {
			ederaCount++
		}
	}
	assert.Equal(t, 1, ederaCount)
}

func TestRunConfidenceSortedAndBounded(t *testing.T) {
	t.Parallel()

	url := "https://kranushealth.com"
	fetcher := &testutils.StaticFetcher{Pages: map[string]string{url: kranusPage}}
	result := newPipeline(t, fetcher, nil, nil).Run(context.Background(), url)

	require.NotEmpty(t, result.Entities)
	for i, e := range result.Entities {
		assert.GreaterOrEqual(t, e.Confidence, 0.0)
		assert.LessOrEqual(t, e.Confidence, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, result.Entities[i-1].Confidence, e.Confidence,
				"entities must be sorted by descending confidence")
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	url := "https://kranushealth.com"
	fetcher := &testutils.StaticFetcher{Pages: map[string]string{url: kranusPage}}
	p := newPipeline(t, fetcher, nil, nil)

	first := p.Run(context.Background(), url)
	second := p.Run(context.Background(), url)

	require.Equal(t, len(first.Entities), len(second.Entities))
	for i := range first.Entities {
		assert.Equal(t, first.Entities[i].Text, second.Entities[i].Text)
		assert.InDelta(t, first.Entities[i].Confidence, second.Entities[i].Confidence, 1e-9)
	}
}

func TestRunFetchFailureYieldsEmptyResult(t *testing.T) {
	t.Parallel()

	url := "https://unreachable.example"
	fetcher := &testutils.StaticFetcher{
		Err: &fetch.Error{Kind: entity.FailureTimeout, URL: url},
	}

	result := newPipeline(t, fetcher, nil, nil).Run(context.Background(), url)

	require.NotNil(t, result)
	assert.Equal(t, entity.FailureTimeout, result.Failure)
	assert.Empty(t, result.Entities)
	assert.Equal(t, url, result.URL)
}

func TestRunFailureStillEvaluatesGroundTruth(t *testing.T) {
	t.Parallel()

	url := "https://unreachable.example"
	matcher, err := groundtruth.NewMatcher([]entity.GroundTruthEntry{
		{NormalizedURL: url, CanonicalName: "Unreachable GmbH"},
	}, 0.75)
	require.NoError(t, err)

	fetcher := &testutils.StaticFetcher{
		Err: &fetch.Error{Kind: entity.FailureSSL, URL: url},
	}

	result := newPipeline(t, fetcher, matcher, nil).Run(context.Background(), url)

	assert.Equal(t, entity.FailureSSL, result.Failure)
	assert.Empty(t, result.GroundTruthFound)
	assert.Equal(t, []string{"Unreachable GmbH"}, result.GroundTruthMiss)
}

func TestRunGroundTruthFound(t *testing.T) {
	t.Parallel()

	url := "https://kranushealth.com"
	matcher, err := groundtruth.NewMatcher([]entity.GroundTruthEntry{
		{NormalizedURL: url, CanonicalName: "Kranus Health GmbH"},
	}, 0.75)
	require.NoError(t, err)

	fetcher := &testutils.StaticFetcher{Pages: map[string]string{url: kranusPage}}
	result := newPipeline(t, fetcher, matcher, nil).Run(context.Background(), url)

	assert.Equal(t, []string{"Kranus Health GmbH"}, result.GroundTruthFound)
	assert.Empty(t, result.GroundTruthMiss)
}

func TestRunCountsRejections(t *testing.T) {
	t.Parallel()

	url := "https://kranushealth.com"
	stats := pipeline.NewStats()
	fetcher := &testutils.StaticFetcher{Pages: map[string]string{url: kranusPage}}

	newPipeline(t, fetcher, nil, stats).Run(context.Background(), url)

	rejections := stats.Rejections()
	assert.NotEmpty(t, rejections, "the fixture page carries filterable chrome")

	total := 0
	for _, n := range rejections {
		total += n
	}
	assert.Positive(t, total)
}

func TestRunnerPreservesInputOrder(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://kranushealth.com",
		"https://unreachable.example",
		"https://apheris.com",
	}
	fetcher := &testutils.StaticFetcher{Pages: map[string]string{
		urls[0]: kranusPage,
		urls[2]: `<html><head><meta property="og:site_name" content="Apheris"></head></html>`,
	}}

	cfg := config.Default()
	cfg.Workers.PoolSize = 2
	p := pipeline.New(cfg, fetcher, nil, nil, logger.NewNoOp())
	runner, err := pipeline.NewRunner(cfg, p, logger.NewNoOp())
	require.NoError(t, err)

	results := runner.Run(context.Background(), urls)

	require.Len(t, results, len(urls))
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
	}
}

func TestRunnerCancelledBatchStillReturnsResults(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	p := pipeline.New(cfg, &testutils.StaticFetcher{}, nil, nil, logger.NewNoOp())
	runner, err := pipeline.NewRunner(cfg, p, logger.NewNoOp())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	urls := []string{"https://a.example", "https://b.example"}
	results := runner.Run(ctx, urls)

	require.Len(t, results, len(urls))
	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, urls[i], r.URL)
		assert.Equal(t, entity.FailureTimeout, r.Failure)
	}
}
