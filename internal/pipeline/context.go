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
	"fmt"
	"strings"

	"github.com/huyiling521/CS6120-NutriRAG/internal/database"
)

// NoContextFound is the neutral context used when retrieval produced no
// documents. The generation prompt always needs some context text.
const NoContextFound = "No specific recipe information found based on the query."

// unknownRecipeName is used for documents whose name is missing.
const unknownRecipeName = "Unknown Recipe"

// AssembleContext formats retrieved documents into a single bounded text
// block for the generation prompt, in retrieval rank order. Snippets are
// truncated on raw length, not word boundaries; that keeps the prompt size
// deterministic.
func AssembleContext(docs []database.Document, snippetMaxLen, ingredientsMaxLen int) string {
	if len(docs) == 0 {
		return NoContextFound
	}

	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		name := doc.Name
		if name == "" {
			name = unknownRecipeName
		}

		snippet := truncate(doc.Preview, snippetMaxLen)

		var ingredients string
		if doc.Ingredients != "" {
			ingredients = "\nMain ingredients: " + truncate(doc.Ingredients, ingredientsMaxLen)
		}

		blocks = append(blocks, fmt.Sprintf(
			"Relevant Document %d:\nRecipe Name: %s\nContent Snippet: %s%s\n---",
			i+1, name, snippet, ingredients,
		))
	}

	return strings.Join(blocks, "\n\n")
}

// truncate caps s at max runes, appending an ellipsis when it was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
