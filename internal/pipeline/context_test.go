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
	"strings"
	"testing"

	"github.com/huyiling521/CS6120-NutriRAG/internal/database"
)

func TestAssembleContextEmpty(t *testing.T) {
	if got := AssembleContext(nil, 250, 100); got != NoContextFound {
		t.Errorf("expected %q, got %q", NoContextFound, got)
	}
	if got := AssembleContext([]database.Document{}, 250, 100); got != NoContextFound {
		t.Errorf("expected %q, got %q", NoContextFound, got)
	}
}

func TestAssembleContext(t *testing.T) {
	docs := []database.Document{
		{Name: "Grilled Chicken Salad", Preview: "A light salad.", Ingredients: "chicken, greens"},
		{Name: "Quinoa Bowl", Preview: "A grain bowl."},
	}

	result := AssembleContext(docs, 250, 100)

	expected := "Relevant Document 1:\n" +
		"Recipe Name: Grilled Chicken Salad\n" +
		"Content Snippet: A light salad.\n" +
		"Main ingredients: chicken, greens\n" +
		"---\n\n" +
		"Relevant Document 2:\n" +
		"Recipe Name: Quinoa Bowl\n" +
		"Content Snippet: A grain bowl.\n" +
		"---"
	if result != expected {
		t.Errorf("unexpected context:\n%s\nexpected:\n%s", result, expected)
	}
}

func TestAssembleContextMissingName(t *testing.T) {
	docs := []database.Document{
		{Preview: "A mystery dish."},
	}

	result := AssembleContext(docs, 250, 100)

	if !strings.Contains(result, "Recipe Name: Unknown Recipe") {
		t.Errorf("expected unknown recipe placeholder, got:\n%s", result)
	}
}

func TestAssembleContextTruncation(t *testing.T) {
	docs := []database.Document{
		{
			Name:        "Long Recipe",
			Preview:     strings.Repeat("a", 300),
			Ingredients: strings.Repeat("b", 150),
		},
	}

	result := AssembleContext(docs, 250, 100)

	if !strings.Contains(result, strings.Repeat("a", 250)+"...") {
		t.Error("snippet should be truncated at 250 characters with an ellipsis")
	}
	if strings.Contains(result, strings.Repeat("a", 251)) {
		t.Error("snippet exceeds the configured cap")
	}
	if !strings.Contains(result, strings.Repeat("b", 100)+"...") {
		t.Error("ingredients should be truncated at 100 characters with an ellipsis")
	}
}

func TestAssembleContextExactLengthNotTruncated(t *testing.T) {
	docs := []database.Document{
		{Name: "Exact", Preview: strings.Repeat("a", 250)},
	}

	result := AssembleContext(docs, 250, 100)

	if strings.Contains(result, "...") {
		t.Error("snippet at exactly the cap should not get an ellipsis")
	}
}
