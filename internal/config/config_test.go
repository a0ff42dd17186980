package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasi76/namesift/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, 0.85, cfg.Pipeline.MergeThreshold, 1e-9)
	assert.InDelta(t, 0.95, cfg.Pipeline.DuplicateThreshold, 1e-9)
	assert.InDelta(t, 0.75, cfg.Pipeline.GroundTruthThreshold, 1e-9)
	assert.Equal(t, 2, cfg.Pipeline.MinLength)
	assert.Equal(t, 60, cfg.Pipeline.MaxLength)
	assert.NotEmpty(t, cfg.Pipeline.EntityKeywords)
	assert.NotEmpty(t, cfg.Pipeline.JunkPatterns)
	for _, jp := range cfg.Pipeline.JunkPatterns {
		assert.NotEmpty(t, jp.Name)
		assert.NotNil(t, jp.Pattern)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Workers.PoolSize, cfg.Workers.PoolSize)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namesift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workers:
  pool_size: 3
  job_timeout: 10s
fetch:
  timeout: 5s
pipeline:
  merge_threshold: 0.9
  domain_overrides:
    fyzo.de: fyzo GmbH
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers.PoolSize)
	assert.Equal(t, 10*time.Second, cfg.Workers.JobTimeout)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.InDelta(t, 0.9, cfg.Pipeline.MergeThreshold, 1e-9)
	assert.Equal(t, "fyzo GmbH", cfg.Pipeline.DomainOverrides["fyzo.de"])

	// Untouched sections keep their defaults.
	assert.NotEmpty(t, cfg.Pipeline.EntityKeywords)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namesift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  merge_threshold: 1.5\n"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadCompilesJunkPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namesift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  junk_patterns:
    - name: custom
      pattern: "^custom junk$"
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Pipeline.JunkPatterns, 1, "file patterns replace the defaults")
	assert.Equal(t, "custom", cfg.Pipeline.JunkPatterns[0].Name)
	assert.True(t, cfg.Pipeline.JunkPatterns[0].Pattern.MatchString("Custom Junk"),
		"patterns compile case-insensitive")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"merge threshold above one", func(c *config.Config) { c.Pipeline.MergeThreshold = 1.2 }},
		{"duplicate below merge", func(c *config.Config) { c.Pipeline.DuplicateThreshold = 0.5 }},
		{"ground truth zero", func(c *config.Config) { c.Pipeline.GroundTruthThreshold = 0 }},
		{"length bounds inverted", func(c *config.Config) { c.Pipeline.MaxLength = 1 }},
		{"no workers", func(c *config.Config) { c.Workers.PoolSize = 0 }},
		{"no fetch timeout", func(c *config.Config) { c.Fetch.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
