//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huyiling521/CS6120-NutriRAG/internal/config"
	"github.com/huyiling521/CS6120-NutriRAG/internal/database"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm/factory"
)

// Resources bundles everything the pipeline needs at runtime: the database
// pool, the two model providers, and the orchestrator wired on top of them.
type Resources struct {
	pool           *database.Pool
	embeddingProv  llm.EmbeddingProvider
	completionProv llm.CompletionProvider
	orchestrator   *Orchestrator
	logger         *slog.Logger
}

// NewResources initializes the pipeline from configuration: API keys are
// loaded, the database pool is opened and pinged, and both providers are
// constructed. Any failure here is fatal for startup; there is no partial
// initialization.
func NewResources(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Resources, error) {
	if logger == nil {
		logger = slog.Default()
	}

	keyLoader := config.NewAPIKeyLoader(cfg.APIKeys)
	apiKeys, err := keyLoader.LoadRequiredKeys(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load API keys: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	embeddingProv, err := factory.NewEmbeddingProvider(cfg.EmbeddingLLM, apiKeys)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	completionProv, err := factory.NewCompletionProvider(cfg.LLM, apiKeys)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create completion provider: %w", err)
	}

	orchestrator := NewOrchestrator(OrchestratorConfig{
		Retriever:         pool,
		EmbeddingProv:     embeddingProv,
		CompletionProv:    completionProv,
		TopK:              cfg.Retrieval.TopK,
		SnippetMaxLen:     cfg.Retrieval.SnippetMaxLen,
		IngredientsMaxLen: cfg.Retrieval.IngredientsMaxLen,
		Logger:            logger,
	})

	logger.Info("pipeline initialized",
		"embedding_provider", cfg.EmbeddingLLM.Provider,
		"embedding_model", embeddingProv.ModelName(),
		"completion_provider", cfg.LLM.Provider,
		"completion_model", completionProv.ModelName(),
		"top_k", cfg.Retrieval.TopK,
	)

	return &Resources{
		pool:           pool,
		embeddingProv:  embeddingProv,
		completionProv: completionProv,
		orchestrator:   orchestrator,
		logger:         logger,
	}, nil
}

// Orchestrator returns the request orchestrator.
func (r *Resources) Orchestrator() *Orchestrator {
	return r.orchestrator
}

// Ping verifies database connectivity, for health reporting.
func (r *Resources) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the database pool.
func (r *Resources) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
