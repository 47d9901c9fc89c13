// Package llm provides the embedding model client used for semantic scoring.
package llm

import "os"

// Provider represents an embedding provider
type Provider string

// Provider constants define supported embedding providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultEmbeddingModel is the Gemini embedding model used when none is configured.
const DefaultEmbeddingModel = "text-embedding-004"

// Config holds the embedding model configuration
type Config struct {
	Provider       Provider
	EmbeddingModel string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		EmbeddingModel: DefaultEmbeddingModel,
	}
}

// ConfigFromEnv returns DefaultConfig with EMBEDDING_MODEL applied when set.
func ConfigFromEnv() *Config {
	config := DefaultConfig()
	if model := os.Getenv("EMBEDDING_MODEL"); model != "" {
		config.EmbeddingModel = model
	}
	return config
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	return &Config{
		Provider:       c.Provider,
		EmbeddingModel: model,
	}
}

// Model returns the embedding model name, falling back to the default
func (c *Config) Model() string {
	if c == nil || c.EmbeddingModel == "" {
		return DefaultEmbeddingModel
	}
	return c.EmbeddingModel
}
