// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultPort                  = 8080
	DefaultRequestTimeoutSeconds = 120
	DefaultCacheMaxEntries       = 4096
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Embedding
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	EmbeddingModel string `json:"embedding_model,omitempty"` // Gemini embedding model name

	// Embedding cache
	EmbedCacheURL   string `json:"embed_cache_url,omitempty"`   // postgres://, redis:// or sqlite:// URL of the persistent tier
	CacheMaxEntries int    `json:"cache_max_entries,omitempty"` // In-memory tier bound

	// Scoring
	WeightsFile   string   `json:"weights_file,omitempty"`   // YAML role weight table replacing the built-in one
	KeywordWeight *float64 `json:"keyword_weight,omitempty"` // Default keyword share of the final score (0.0-1.0)
	Workers       int      `json:"workers,omitempty"`        // Resumes scored concurrently (0 = GOMAXPROCS)

	// Server
	Port                  int `json:"port,omitempty"`
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.KeywordWeight != nil && (*c.KeywordWeight < 0 || *c.KeywordWeight > 1) {
		return fmt.Errorf("config error: 'keyword_weight' must be between 0 and 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("config error: 'cache_max_entries' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.WeightsFile != "" {
		if _, err := os.Stat(c.WeightsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: weights file not found: %s", c.WeightsFile)
		}
	}

	if c.EmbedCacheURL != "" {
		u, err := url.Parse(c.EmbedCacheURL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'embed_cache_url': %w", err)
		}
		switch u.Scheme {
		case "postgres", "postgresql", "redis", "rediss", "sqlite":
		default:
			return fmt.Errorf("config error: unsupported 'embed_cache_url' scheme %q", u.Scheme)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply environment values beneath config file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.EmbedCacheURL == "" {
		result.EmbedCacheURL = defaults.EmbedCacheURL
	}
	if result.WeightsFile == "" {
		result.WeightsFile = defaults.WeightsFile
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if result.CacheMaxEntries == 0 {
		result.CacheMaxEntries = defaults.CacheMaxEntries
	}

	// Pointer fields: nil means unset
	if result.KeywordWeight == nil && defaults.KeywordWeight != nil {
		w := *defaults.KeywordWeight
		result.KeywordWeight = &w
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
