//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration loading and validation for the
// NutriRAG Server.
package config

// Config is the root configuration structure for the server.
type Config struct {
	Server       ServerConfig    `yaml:"server"`
	Database     DatabaseConfig  `yaml:"database"`
	LLM          LLMConfig       `yaml:"llm"`
	EmbeddingLLM LLMConfig       `yaml:"embedding_llm"`
	Retrieval    RetrievalConfig `yaml:"retrieval"`
	APIKeys      APIKeysConfig   `yaml:"api_keys"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddress string     `yaml:"listen_address"`
	Port          int        `yaml:"port"`
	CORS          CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) settings.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"` // Origins to allow, or ["*"] for all
}

// DatabaseConfig contains PostgreSQL connection settings for the recipe
// vector store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LLMConfig contains settings for an LLM provider.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// RetrievalConfig contains settings for document retrieval and context
// assembly. These are fixed policy knobs, not per-request options.
type RetrievalConfig struct {
	TopK              int `yaml:"top_k"`
	SnippetMaxLen     int `yaml:"snippet_max_len"`
	IngredientsMaxLen int `yaml:"ingredients_max_len"`
}

// APIKeysConfig contains paths to files containing API keys for LLM
// providers. If not specified, keys are loaded from environment variables
// or default file locations (~/.openai-api-key).
type APIKeysConfig struct {
	OpenAI string `yaml:"openai"` // Path to file containing OpenAI API key
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress: "0.0.0.0",
			Port:          8080,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "prefer",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		EmbeddingLLM: LLMConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Retrieval: RetrievalConfig{
			TopK:              5,
			SnippetMaxLen:     250,
			IngredientsMaxLen: 100,
		},
	}
}
