//-------------------------------------------------------------------------
//
// NutriRAG Server
//
// Copyright (c) 2026, NutriRAG Authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package pipeline provides the query-to-answer RAG pipeline: intent
// extraction, query rewriting, retrieval, context assembly, and grounded
// answer generation.
package pipeline

// Intent is the classified purpose of a user query.
type Intent string

// The fixed set of intents the extractor may produce.
const (
	IntentFindRecipe        Intent = "find_recipe"
	IntentNutritionalInfo   Intent = "get_nutritional_info"
	IntentHealthySubstitute Intent = "find_healthy_substitute"
	IntentCookingTechnique  Intent = "ask_cooking_technique"
	IntentMealPlanIdea      Intent = "request_meal_plan_idea"
	IntentGeneralAdvice     Intent = "general_health_cooking_advice"
	IntentUnknown           Intent = "unknown"
)

// ParseIntent maps a string to a known Intent, coercing anything outside
// the fixed set to IntentUnknown.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentFindRecipe, IntentNutritionalInfo, IntentHealthySubstitute,
		IntentCookingTechnique, IntentMealPlanIdea, IntentGeneralAdvice,
		IntentUnknown:
		return Intent(s)
	default:
		return IntentUnknown
	}
}

// Entity categories the extractor recognizes.
const (
	EntityIngredients      = "ingredients"
	EntityDietary          = "dietary_restrictions_preferences"
	EntityNutritionalGoals = "nutritional_goals"
	EntityMealType         = "meal_type"
	EntityCookingMethods   = "cooking_methods"
	EntityExclusions       = "exclusions"
)

// Entities maps an entity category to the strings extracted for it.
// Categories with nothing extracted are absent, never empty.
type Entities map[string][]string

// knownEntityCategories is the allowed key set for Entities.
var knownEntityCategories = map[string]bool{
	EntityIngredients:      true,
	EntityDietary:          true,
	EntityNutritionalGoals: true,
	EntityMealType:         true,
	EntityCookingMethods:   true,
	EntityExclusions:       true,
}

// ParsedIntent is the structured result of the intent extraction step.
type ParsedIntent struct {
	CleanedQuery string   `json:"cleaned_query"`
	Intent       Intent   `json:"intent"`
	Entities     Entities `json:"entities"`
}

// Message represents a turn in the conversation history.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// QueryRequest represents a RAG query request.
type QueryRequest struct {
	Query   string    `json:"query"`
	History []Message `json:"history,omitempty"` // Previous conversation turns
}

// Result is the externally visible outcome of one pipeline run. Answer is
// always populated: either the generated Markdown answer or a fixed
// user-facing message when a stage failed. The remaining fields carry the
// intermediate products for diagnostics.
type Result struct {
	Answer        string   `json:"answer"`
	Intent        Intent   `json:"intent"`
	Entities      Entities `json:"entities"`
	SemanticQuery string   `json:"semantic_query"`
}

// Fixed user-facing messages for terminal pipeline failures.
const (
	// AnswerCannotProcess is returned when rewriting collapses to an
	// empty semantic query.
	AnswerCannotProcess = "Sorry, I could not process your query."

	// AnswerGenerationFailed is returned when the final model call fails.
	AnswerGenerationFailed = "Sorry, an error occurred while generating the final response."
)
