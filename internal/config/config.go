// Package config provides configuration management for namesift. It loads
// defaults, an optional namesift.yaml, and environment overrides through
// viper, and carries every heuristic of the extraction pipeline as data so
// runs are deterministic and individually tunable.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/yasi76/namesift/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	// Logger holds logging configuration.
	Logger logger.Config `yaml:"logger" mapstructure:"logger"`
	// Fetch holds the HTTP fetch settings.
	Fetch Fetch `yaml:"fetch" mapstructure:"fetch"`
	// Workers holds the batch concurrency settings.
	Workers Workers `yaml:"workers" mapstructure:"workers"`
	// Pipeline holds the extraction heuristics.
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
}

// Fetch configures the HTTP fetch collaborator.
type Fetch struct {
	// Timeout bounds a single fetch, redirects included.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	// MaxBodyBytes caps how much of a page is read. The head section is
	// what the pipeline needs, so the cap stays small.
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	// RatePerHost is the sustained request rate per host.
	RatePerHost float64 `yaml:"rate_per_host" mapstructure:"rate_per_host"`
	// RateBurst is the per-host burst allowance.
	RateBurst int `yaml:"rate_burst" mapstructure:"rate_burst"`
	// CacheTTL enables the development page cache when positive.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// Workers configures the batch worker pool.
type Workers struct {
	// PoolSize is the number of URLs processed concurrently.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size"`
	// JobTimeout bounds one URL's pipeline run end to end.
	JobTimeout time.Duration `yaml:"job_timeout" mapstructure:"job_timeout"`
}

// NamedPattern is a junk-phrase filter pattern with a stable name so filter
// rejections stay explainable in logs and reports.
type NamedPattern struct {
	Name    string         `yaml:"name" mapstructure:"name"`
	Pattern *regexp.Regexp `yaml:"pattern" mapstructure:"pattern"`
}

// Pipeline carries the extraction, filtering, scoring, and merge knobs.
type Pipeline struct {
	// MergeThreshold is the similarity at or above which two candidates of
	// one kind may merge.
	MergeThreshold float64 `yaml:"merge_threshold" mapstructure:"merge_threshold"`
	// DuplicateThreshold is the similarity at or above which a pair is a
	// plain duplicate rather than a merge.
	DuplicateThreshold float64 `yaml:"duplicate_threshold" mapstructure:"duplicate_threshold"`
	// GroundTruthThreshold is the token-set similarity required for a
	// ground-truth match.
	GroundTruthThreshold float64 `yaml:"ground_truth_threshold" mapstructure:"ground_truth_threshold"`

	// MinLength and MaxLength bound valid candidate text, in characters.
	MinLength int `yaml:"min_length" mapstructure:"min_length"`
	MaxLength int `yaml:"max_length" mapstructure:"max_length"`
	// MaxWords is the word count above which a candidate's confidence is
	// penalized as sentence-like.
	MaxWords int `yaml:"max_words" mapstructure:"max_words"`

	// EntityKeywords is the vocabulary a low-trust candidate must carry.
	EntityKeywords []string `yaml:"entity_keywords" mapstructure:"entity_keywords"`
	// Stopwords maps a language code to its stopword set.
	Stopwords map[string][]string `yaml:"stopwords" mapstructure:"stopwords"`
	// JunkPatterns are the named navigation/marketing rejection patterns.
	JunkPatterns []NamedPattern `yaml:"junk_patterns" mapstructure:"junk_patterns"`
	// GenericPhrases are exact texts penalized by the scorer.
	GenericPhrases []string `yaml:"generic_phrases" mapstructure:"generic_phrases"`
	// PlatformNames are hosting/CMS vendor names dropped outright.
	PlatformNames []string `yaml:"platform_names" mapstructure:"platform_names"`
	// DomainOverrides maps a bare host to its known entity name.
	DomainOverrides map[string]string `yaml:"domain_overrides" mapstructure:"domain_overrides"`
}

// Load reads configuration from the given file (optional), environment
// variables prefixed NAMESIFT_, and built-in defaults, in that order of
// precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("namesift")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("NAMESIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Default()
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToRegexpHook(),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.MergeThreshold <= 0 || p.MergeThreshold > 1 {
		return fmt.Errorf("pipeline.merge_threshold %.2f outside (0,1]", p.MergeThreshold)
	}
	if p.DuplicateThreshold < p.MergeThreshold || p.DuplicateThreshold > 1 {
		return fmt.Errorf("pipeline.duplicate_threshold %.2f must be in [merge_threshold,1]",
			p.DuplicateThreshold)
	}
	if p.GroundTruthThreshold <= 0 || p.GroundTruthThreshold > 1 {
		return fmt.Errorf("pipeline.ground_truth_threshold %.2f outside (0,1]", p.GroundTruthThreshold)
	}
	if p.MinLength < 1 || p.MaxLength <= p.MinLength {
		return fmt.Errorf("pipeline length bounds [%d,%d] invalid", p.MinLength, p.MaxLength)
	}
	if c.Workers.PoolSize < 1 {
		return fmt.Errorf("workers.pool_size %d must be at least 1", c.Workers.PoolSize)
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout %s must be positive", c.Fetch.Timeout)
	}
	return nil
}

// stringToRegexpHook decodes pattern strings from YAML into compiled,
// case-insensitive regular expressions.
func stringToRegexpHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(&regexp.Regexp{}) {
			return data, nil
		}
		s, _ := data.(string)
		re, err := regexp.Compile("(?i)" + s)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", s, err)
		}
		return re, nil
	}
}
