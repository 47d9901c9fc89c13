package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("API key is required")

// Embedder is an abstraction over embedding providers
type Embedder interface {
	// Embed returns the embedding vector of text
	Embed(ctx context.Context, text string) ([]float32, error)
	// Model returns the embedding model name
	Model() string
	// Close releases any resources held by the embedder
	Close() error
}

// NewEmbedder creates a new embedder based on configuration
func NewEmbedder(ctx context.Context, config *Config, apiKey string) (Embedder, error) {
	if config == nil {
		config = DefaultConfig()
	}

	embedder, err := NewGeminiEmbedder(ctx, config, apiKey)
	if err != nil {
		return nil, err
	}
	return embedder, nil
}

// GeminiEmbedder implements Embedder for Google Gemini
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
}

// NewGeminiEmbedder creates a new Gemini embedding client
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := config.Model()
	model := client.EmbeddingModel(name)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{
		client: client,
		model:  model,
		name:   name,
	}, nil
}

// Embed returns the embedding of text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	return extractValues(resp)
}

// Model returns the embedding model name
func (e *GeminiEmbedder) Model() string {
	return e.name
}

// Close releases resources held by the client
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// extractValues extracts the vector from a Gemini embedding response
func extractValues(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil || resp.Embedding == nil {
		return nil, fmt.Errorf("no embedding in response")
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return resp.Embedding.Values, nil
}
