//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package pipeline

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain query untouched",
			input:    "low-carb chicken dinner recipe",
			expected: "low-carb chicken dinner recipe",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "   quinoa salad   ",
			expected: "quinoa salad",
		},
		{
			name:     "internal whitespace collapsed",
			input:    "quinoa \t salad\n\nwith  feta",
			expected: "quinoa salad with feta",
		},
		{
			name:     "boilerplate label stripped",
			input:    "Optimized Search Query: quinoa salad",
			expected: "quinoa salad",
		},
		{
			name:     "boilerplate stripped case insensitively",
			input:    "optimized search query: quinoa salad",
			expected: "quinoa salad",
		},
		{
			name:     "stacked boilerplate stripped",
			input:    "Search Query: Rewritten query: quinoa salad",
			expected: "quinoa salad",
		},
		{
			name:     "leading healthy stripped",
			input:    "healthy quinoa salad",
			expected: "quinoa salad",
		},
		{
			name:     "healthy in the middle kept",
			input:    "quinoa salad with healthy fats",
			expected: "quinoa salad with healthy fats",
		},
		{
			name:     "double quotes stripped",
			input:    `"quinoa salad"`,
			expected: "quinoa salad",
		},
		{
			name:     "single quotes stripped",
			input:    "'quinoa salad'",
			expected: "quinoa salad",
		},
		{
			name:     "only one quote layer stripped",
			input:    `"'quinoa salad'"`,
			expected: "'quinoa salad'",
		},
		{
			name:     "mismatched quotes kept",
			input:    `"quinoa salad'`,
			expected: `"quinoa salad'`,
		},
		{
			name:     "quoted boilerplate stripped in order",
			input:    `Optimized Search Query: "low-carb chicken dinner"`,
			expected: "low-carb chicken dinner",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: "",
		},
		{
			name:     "boilerplate only",
			input:    "Search Query:",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeQuery(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeQuery(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeQueryIdempotent(t *testing.T) {
	inputs := []string{
		"low-carb chicken dinner recipe",
		`Optimized Search Query: "quinoa salad"`,
		"  healthy   breakfast   ideas  ",
		"How to make healthier hummus?",
		"",
	}

	for _, input := range inputs {
		once := NormalizeQuery(input)
		twice := NormalizeQuery(once)
		if once != twice {
			t.Errorf("NormalizeQuery not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
