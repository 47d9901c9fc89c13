package semantic

import (
	"context"
	"sync"

	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// Factory builds an embedder.
type Factory func(ctx context.Context) (Embedder, error)

// SharedEmbedder lazily builds one process-wide embedder. Construction happens at
// most once successfully; a failed attempt is retried by the next caller. It is
// itself an Embedder.
type SharedEmbedder struct {
	mu       sync.Mutex
	factory  Factory
	instance Embedder
}

// NewSharedEmbedder creates a SharedEmbedder over factory.
func NewSharedEmbedder(factory Factory) *SharedEmbedder {
	return &SharedEmbedder{factory: factory}
}

// Get returns the shared embedder, building it on first use. Build failures are
// returned as *textnorm.ResourceUnavailableError.
func (s *SharedEmbedder) Get(ctx context.Context) (Embedder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance != nil {
		return s.instance, nil
	}
	if s.factory == nil {
		return nil, &textnorm.ResourceUnavailableError{Resource: "embedding model"}
	}
	instance, err := s.factory(ctx)
	if err != nil {
		return nil, &textnorm.ResourceUnavailableError{Resource: "embedding model", Cause: err}
	}
	s.instance = instance
	return instance, nil
}

// Embed embeds text with the shared embedder.
func (s *SharedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedder, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return embedder.Embed(ctx, text)
}
