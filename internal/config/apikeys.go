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
	"os"
	"path/filepath"
	"strings"
)

// EnvOpenAIAPIKey is the environment variable holding the OpenAI API key.
const EnvOpenAIAPIKey = "OPENAI_API_KEY"

// DefaultOpenAIKeyFile is the default key file path relative to the home
// directory.
const DefaultOpenAIKeyFile = ".openai-api-key"

// LoadedKeys holds all loaded API keys.
type LoadedKeys struct {
	OpenAI string
}

// APIKeyLoader handles loading API keys from configured paths, environment
// variables, or default file locations.
type APIKeyLoader struct {
	config APIKeysConfig
}

// NewAPIKeyLoader creates a new API key loader with the given configuration.
func NewAPIKeyLoader(cfg APIKeysConfig) *APIKeyLoader {
	return &APIKeyLoader{config: cfg}
}

// LoadRequiredKeys loads the keys required by the configured providers.
// Providers that run locally (ollama) need no key.
func (l *APIKeyLoader) LoadRequiredKeys(cfg *Config) (*LoadedKeys, error) {
	keys := &LoadedKeys{}

	needsOpenAI := strings.EqualFold(cfg.LLM.Provider, ProviderOpenAI) ||
		strings.EqualFold(cfg.EmbeddingLLM.Provider, ProviderOpenAI)

	if needsOpenAI {
		key, err := l.LoadOpenAIKey()
		if err != nil {
			return nil, err
		}
		keys.OpenAI = key
	}

	return keys, nil
}

// LoadOpenAIKey loads the OpenAI API key.
//
// Priority:
//  1. Configured file path (if specified in config)
//  2. OPENAI_API_KEY environment variable
//  3. ~/.openai-api-key
func (l *APIKeyLoader) LoadOpenAIKey() (string, error) {
	if l.config.OpenAI != "" {
		return readKeyFile(expandKeyPath(l.config.OpenAI), "OpenAI")
	}

	if key := os.Getenv(EnvOpenAIAPIKey); key != "" {
		return key, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	path := filepath.Join(homeDir, DefaultOpenAIKeyFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf(
			"OpenAI API key not found: set %s environment variable or create %s",
			EnvOpenAIAPIKey, path)
	}

	return readKeyFile(path, "OpenAI")
}

// readKeyFile reads an API key from a file.
func readKeyFile(path, providerName string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("%s API key file not found: %s", providerName, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s API key file %s: %w",
			providerName, path, err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%s API key file is empty: %s", providerName, path)
	}

	return key, nil
}

// expandKeyPath expands ~ to the user's home directory.
func expandKeyPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
