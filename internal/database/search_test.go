//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package database

import (
	"strings"
	"testing"

	"github.com/huyiling521/CS6120-NutriRAG/internal/config"
)

func TestBuildConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want []string
		skip []string
	}{
		{
			name: "full config",
			cfg: config.DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Database: "nutrirag",
				Username: "rag",
				Password: "secret",
				SSLMode:  "require",
			},
			want: []string{
				"host=db.example.com",
				"port=5433",
				"dbname=nutrirag",
				"user=rag",
				"password=secret",
				"sslmode=require",
			},
		},
		{
			name: "no password",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "nutrirag",
				Username: "rag",
			},
			want: []string{"host=localhost", "dbname=nutrirag"},
			skip: []string{"password="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildConnectionString(tt.cfg)

			for _, part := range tt.want {
				if !strings.Contains(got, part) {
					t.Errorf("connection string missing %q: %s", part, got)
				}
			}
			for _, part := range tt.skip {
				if strings.Contains(got, part) {
					t.Errorf("connection string should not contain %q: %s", part, got)
				}
			}
		})
	}
}

func TestBuildConnectionStringUsernameFallback(t *testing.T) {
	t.Setenv("PGUSER", "env-user")

	got := buildConnectionString(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "nutrirag",
	})

	if !strings.Contains(got, "user=env-user") {
		t.Errorf("expected PGUSER fallback in connection string: %s", got)
	}
}
