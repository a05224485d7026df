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
	"encoding/json"
	"strings"
)

// fallbackParsedIntent is what the extractor degrades to when the model
// output cannot be used: unknown intent, no entities, and the original
// query carried through.
func fallbackParsedIntent(originalQuery string) ParsedIntent {
	return ParsedIntent{
		CleanedQuery: strings.TrimSpace(originalQuery),
		Intent:       IntentUnknown,
		Entities:     Entities{},
	}
}

// parseIntentOutput parses the extraction model's raw output as strict
// JSON. It is a try-parse-or-default combinator: the second return value
// reports whether the output was usable; on failure the fallback
// ParsedIntent is returned and the pipeline continues on the original
// query. Output wrapped in markdown fences counts as malformed.
func parseIntentOutput(raw, originalQuery string) (ParsedIntent, bool) {
	var parsed ParsedIntent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fallbackParsedIntent(originalQuery), false
	}

	// The intent invariant holds even for syntactically valid output:
	// anything outside the enum is coerced to unknown.
	parsed.Intent = ParseIntent(string(parsed.Intent))

	if parsed.CleanedQuery == "" {
		parsed.CleanedQuery = strings.TrimSpace(originalQuery)
	}

	parsed.Entities = sanitizeEntities(parsed.Entities)

	return parsed, true
}

// sanitizeEntities drops unknown categories and empty value lists, so a
// category is either absent or non-empty.
func sanitizeEntities(entities Entities) Entities {
	sanitized := Entities{}
	for category, values := range entities {
		if !knownEntityCategories[category] {
			continue
		}
		kept := make([]string, 0, len(values))
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			sanitized[category] = kept
		}
	}
	return sanitized
}
