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
	"regexp"
	"strings"
)

// boilerplatePrefixes are label phrases the rewrite model tends to prepend
// despite being told not to. "healthy" is included because it often gets
// prepended unnecessarily.
var boilerplatePrefixes = []string{
	"Optimized Search Query:",
	"Search Query:",
	"Here is the query:",
	"Rewritten query:",
	"healthy",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeQuery cleans up model output that is expected to be a bare
// value. The order matters: boilerplate stripping must precede quote
// stripping, which must precede whitespace collapsing, since boilerplate
// may itself be quoted.
func NormalizeQuery(query string) string {
	s := strings.TrimSpace(query)
	s = stripBoilerplate(s)
	s = stripSurroundingQuotes(s)
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// stripBoilerplate removes leading label phrases, case-insensitively,
// repeating until none match so the result is stable under renormalization.
func stripBoilerplate(s string) string {
	for {
		stripped := false
		lower := strings.ToLower(s)
		for _, prefix := range boilerplatePrefixes {
			if strings.HasPrefix(lower, strings.ToLower(prefix)) {
				s = strings.TrimSpace(s[len(prefix):])
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

// stripSurroundingQuotes removes exactly one layer of matching surrounding
// quotes. Mismatched or nested inner quotes are left alone.
func stripSurroundingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
