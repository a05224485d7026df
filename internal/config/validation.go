//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package config

import (
	"fmt"
	"strings"
)

// Known provider names.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors and returns all validation
// errors found.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateLLM()...)
	errs = append(errs, c.validateRetrieval()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateServer validates server configuration.
func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port),
		})
	}

	if c.Server.CORS.Enabled && len(c.Server.CORS.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{
			Field:   "server.cors.allowed_origins",
			Message: "must not be empty when CORS is enabled",
		})
	}

	return errs
}

// validateDatabase validates the recipe store connection settings.
func (c *Config) validateDatabase() ValidationErrors {
	var errs ValidationErrors

	if c.Database.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "database.host",
			Message: "is required",
		})
	}
	if c.Database.Database == "" {
		errs = append(errs, ValidationError{
			Field:   "database.database",
			Message: "is required",
		})
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "database.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Database.Port),
		})
	}

	return errs
}

// validateLLM validates the completion and embedding provider settings.
func (c *Config) validateLLM() ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, validateProvider("llm.provider", c.LLM.Provider)...)
	errs = append(errs, validateProvider("embedding_llm.provider", c.EmbeddingLLM.Provider)...)

	return errs
}

func validateProvider(field, provider string) ValidationErrors {
	switch strings.ToLower(provider) {
	case ProviderOpenAI, ProviderOllama:
		return nil
	default:
		return ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("unknown provider %q (supported: openai, ollama)", provider),
		}}
	}
}

// validateRetrieval validates retrieval and context assembly settings.
func (c *Config) validateRetrieval() ValidationErrors {
	var errs ValidationErrors

	if c.Retrieval.TopK < 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.top_k",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Retrieval.TopK),
		})
	}
	if c.Retrieval.SnippetMaxLen < 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.snippet_max_len",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Retrieval.SnippetMaxLen),
		})
	}
	if c.Retrieval.IngredientsMaxLen < 1 {
		errs = append(errs, ValidationError{
			Field:   "retrieval.ingredients_max_len",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Retrieval.IngredientsMaxLen),
		})
	}

	return errs
}
