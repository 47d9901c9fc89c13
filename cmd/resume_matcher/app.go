package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedcache"
	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/semantic"
	"github.com/jonathan/resume-matcher/internal/textnorm"
)

// app holds the long-lived components shared by every command.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	matcher *ranking.Matcher

	mu      sync.Mutex
	cache   *embedcache.Cache
	closers []io.Closer
}

// loadConfig layers the optional config file over environment values and validates
// the result.
func loadConfig(path string) (config.Config, error) {
	cfg := config.FromEnv()
	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp builds the app from the persistent flags.
func newApp() (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(jsonLogs, debugLogs || cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return buildApp(cfg, log)
}

// buildApp wires the scoring components. The embedding client is not created
// until the first semantic score is needed.
func buildApp(cfg config.Config, log *zap.Logger) (*app, error) {
	if log == nil {
		log = zap.NewNop()
	}

	table := keyword.DefaultWeightTable()
	if cfg.WeightsFile != "" {
		loaded, err := keyword.LoadWeightTable(cfg.WeightsFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	normalizer := textnorm.NewDefault(log)
	log.Debug("text normalizer ready", zap.Bool("lemmatize", normalizer.Lemmatizes()))

	a := &app{cfg: cfg, logger: log}
	embedder := semantic.NewSharedEmbedder(a.newEmbedder)
	a.matcher = ranking.NewMatcher(
		keyword.NewScorer(table),
		semantic.NewScorer(normalizer, embedder),
		ranking.WithWorkers(cfg.Workers),
		ranking.WithLogger(log),
	)
	return a, nil
}

// newEmbedder creates the Gemini embedder behind the embedding cache. A persistent
// cache tier that cannot be opened is logged and skipped.
func (a *app) newEmbedder(ctx context.Context) (semantic.Embedder, error) {
	llmConfig := llm.ConfigFromEnv()
	if a.cfg.EmbeddingModel != "" {
		llmConfig = llmConfig.WithModel(a.cfg.EmbeddingModel)
	}
	source, err := llm.NewEmbedder(ctx, llmConfig, a.cfg.APIKey)
	if err != nil {
		return nil, err
	}

	opts := []embedcache.Option{
		embedcache.WithMaxEntries(a.cfg.CacheMaxEntries),
		embedcache.WithLogger(a.logger),
	}
	store, err := embedcache.Open(ctx, a.cfg.EmbedCacheURL)
	switch {
	case err != nil:
		a.logger.Warn("embedding cache store unavailable, using memory only", zap.Error(err))
	case store != nil:
		opts = append(opts, embedcache.WithStore(store))
	}

	cache := embedcache.New(source, source.Model(), opts...)
	a.mu.Lock()
	a.cache = cache
	a.mu.Unlock()
	a.track(source, cache)
	a.logger.Debug("embedder ready", zap.String("model", source.Model()))
	return cache, nil
}

func (a *app) track(closers ...io.Closer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, closers...)
}

// Close logs cache usage, releases the embedder and cache, then flushes the logger.
func (a *app) Close() error {
	a.mu.Lock()
	cache := a.cache
	closers := a.closers
	a.cache = nil
	a.closers = nil
	a.mu.Unlock()

	if cache != nil {
		hits, misses := cache.Stats()
		a.logger.Debug("embedding cache stats", zap.Int64("hits", hits), zap.Int64("misses", misses))
	}

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
