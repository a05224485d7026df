//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package factory provides functions to create LLM providers from
// configuration.
package factory

import (
	"fmt"
	"strings"

	"github.com/huyiling521/CS6120-NutriRAG/internal/config"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm/ollama"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm/openai"
)

// NewEmbeddingProvider creates an embedding provider based on configuration.
func NewEmbeddingProvider(
	cfg config.LLMConfig,
	apiKeys *config.LoadedKeys,
) (llm.EmbeddingProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOpenAI:
		if apiKeys.OpenAI == "" {
			return nil, fmt.Errorf("OpenAI API key not configured")
		}
		opts := []openai.EmbeddingOption{}
		if cfg.Model != "" {
			opts = append(opts, openai.WithEmbeddingModel(cfg.Model))
		}
		return openai.NewEmbeddingProvider(apiKeys.OpenAI, opts...), nil

	case config.ProviderOllama:
		opts := []ollama.EmbeddingOption{}
		if cfg.Model != "" {
			opts = append(opts, ollama.WithEmbeddingModel(cfg.Model))
		}
		return ollama.NewEmbeddingProvider(opts...), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

// NewCompletionProvider creates a completion provider based on configuration.
func NewCompletionProvider(
	cfg config.LLMConfig,
	apiKeys *config.LoadedKeys,
) (llm.CompletionProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOpenAI:
		if apiKeys.OpenAI == "" {
			return nil, fmt.Errorf("OpenAI API key not configured")
		}
		opts := []openai.CompletionOption{}
		if cfg.Model != "" {
			opts = append(opts, openai.WithCompletionModel(cfg.Model))
		}
		return openai.NewCompletionProvider(apiKeys.OpenAI, opts...), nil

	case config.ProviderOllama:
		opts := []ollama.CompletionOption{}
		if cfg.Model != "" {
			opts = append(opts, ollama.WithCompletionModel(cfg.Model))
		}
		return ollama.NewCompletionProvider(opts...), nil

	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}
