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
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
)

// recipesTable is the index artifact written by the external index builder.
// This server only ever reads from it.
const recipesTable = "recipes"

// Document is a recipe document returned from the vector index.
type Document struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Preview     string  `json:"preview"`
	Ingredients string  `json:"ingredients"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"` // 1-based retrieval rank
}

// SimilaritySearch returns up to k recipe documents ordered by descending
// cosine similarity to the query embedding. Rank is assigned in result
// order starting at 1.
func (p *Pool) SimilaritySearch(
	ctx context.Context,
	embedding []float32,
	k int,
) ([]Document, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	// The <=> operator is pgvector cosine distance; subtract from 1 for
	// similarity.
	query := fmt.Sprintf(`
		SELECT
			id::text,
			name,
			COALESCE(preview, '') AS preview,
			COALESCE(ingredients, '') AS ingredients,
			1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		recipesTable,
	)

	rows, err := p.pool.Query(ctx, query, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Name, &d.Preview, &d.Ingredients, &d.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		d.Rank = len(docs) + 1
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return docs, nil
}
