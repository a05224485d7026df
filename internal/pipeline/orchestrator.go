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
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/huyiling521/CS6120-NutriRAG/internal/database"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm"
)

// Pipeline stage names, used for logging transitions and failures.
const (
	stageIntent   = "intent_extraction"
	stageRewrite  = "query_rewrite"
	stageRetrieve = "retrieval"
	stageGenerate = "generation"
)

// generationTemperature is used for all three model calls.
const generationTemperature = 0.7

// Retriever performs nearest-neighbor search over the recipe index.
type Retriever interface {
	SimilaritySearch(ctx context.Context, embedding []float32, k int) ([]database.Document, error)
}

// Orchestrator runs the query-to-answer pipeline. It is stateless per
// request; every field is set once at construction and shared read-only
// across concurrent requests.
type Orchestrator struct {
	retriever         Retriever
	embeddingProv     llm.EmbeddingProvider
	completionProv    llm.CompletionProvider
	topK              int
	snippetMaxLen     int
	ingredientsMaxLen int
	logger            *slog.Logger
}

// OrchestratorConfig contains the configuration for creating an orchestrator.
type OrchestratorConfig struct {
	Retriever         Retriever
	EmbeddingProv     llm.EmbeddingProvider
	CompletionProv    llm.CompletionProvider
	TopK              int
	SnippetMaxLen     int
	IngredientsMaxLen int
	Logger            *slog.Logger
}

// NewOrchestrator creates a new pipeline orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		retriever:         cfg.Retriever,
		embeddingProv:     cfg.EmbeddingProv,
		completionProv:    cfg.CompletionProv,
		topK:              cfg.TopK,
		snippetMaxLen:     cfg.SnippetMaxLen,
		ingredientsMaxLen: cfg.IngredientsMaxLen,
		logger:            logger,
	}
}

// Execute runs the full pipeline for one query. It never returns an error:
// every stage failure is absorbed at its boundary and converted into either
// graceful degradation or a fixed user-facing answer. Each external call is
// attempted exactly once; the caller may resubmit on a degraded result.
func (o *Orchestrator) Execute(ctx context.Context, req QueryRequest) *Result {
	parsed, extracted := o.extractIntent(ctx, req.Query)
	semanticQuery := o.rewriteQuery(ctx, parsed, extracted, req.Query)

	result := &Result{
		Intent:        parsed.Intent,
		Entities:      parsed.Entities,
		SemanticQuery: semanticQuery,
	}

	if semanticQuery == "" {
		o.logger.Warn("semantic query empty after rewrite, halting",
			"stage", stageRewrite)
		result.Answer = AnswerCannotProcess
		return result
	}

	docs := o.retrieve(ctx, semanticQuery)
	contextBlock := AssembleContext(docs, o.snippetMaxLen, o.ingredientsMaxLen)

	answer, err := o.generateAnswer(ctx, req, contextBlock)
	if err != nil {
		o.logger.Error("answer generation failed",
			"stage", stageGenerate,
			"error", err)
		result.Answer = AnswerGenerationFailed
		return result
	}

	result.Answer = answer
	return result
}

// extractIntent runs the intent extraction call. It always produces a
// usable ParsedIntent; model or parse failures degrade to the fallback.
// The second return value reports whether extraction succeeded.
func (o *Orchestrator) extractIntent(ctx context.Context, query string) (ParsedIntent, bool) {
	resp, err := o.completionProv.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: renderIntentPrompt(query)},
		},
		Temperature: generationTemperature,
	})
	if err != nil {
		o.logger.Warn("intent extraction call failed, using fallback",
			"stage", stageIntent,
			"error", err)
		return fallbackParsedIntent(query), false
	}

	parsed, ok := parseIntentOutput(strings.TrimSpace(resp.Content), query)
	if !ok {
		o.logger.Warn("intent extraction output was not valid JSON, using fallback",
			"stage", stageIntent)
	}
	return parsed, ok
}

// rewriteQuery produces the semantic query. When extraction fell back, the
// rewrite call is skipped and the original query is used as the retrieval
// key. An empty return value halts the pipeline (see Execute).
func (o *Orchestrator) rewriteQuery(
	ctx context.Context,
	parsed ParsedIntent,
	extracted bool,
	originalQuery string,
) string {
	if !extracted {
		return strings.TrimSpace(originalQuery)
	}

	entitiesJSON, err := json.MarshalIndent(parsed.Entities, "", "    ")
	if err != nil {
		// A string-keyed map of string slices cannot fail to marshal;
		// treat it like a rewrite failure anyway.
		entitiesJSON = []byte("{}")
	}

	resp, err := o.completionProv.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: renderRewritePrompt(parsed.Intent, string(entitiesJSON))},
		},
		Temperature: generationTemperature,
	})
	if err != nil {
		o.logger.Warn("query rewrite call failed",
			"stage", stageRewrite,
			"error", err)
		return ""
	}

	semanticQuery := NormalizeQuery(resp.Content)
	o.logger.Debug("query rewritten",
		"stage", stageRewrite,
		"semantic_query", semanticQuery)
	return semanticQuery
}

// retrieve embeds the semantic query and searches the recipe index. Any
// failure degrades to an empty document list; "no context found" is a
// valid pipeline state, not an error.
func (o *Orchestrator) retrieve(ctx context.Context, semanticQuery string) []database.Document {
	embedding, err := o.embeddingProv.Embed(ctx, semanticQuery)
	if err != nil {
		o.logger.Warn("query embedding failed, continuing without context",
			"stage", stageRetrieve,
			"error", err)
		return nil
	}

	docs, err := o.retriever.SimilaritySearch(ctx, embedding, o.topK)
	if err != nil {
		o.logger.Warn("similarity search failed, continuing without context",
			"stage", stageRetrieve,
			"error", err)
		return nil
	}

	o.logger.Debug("documents retrieved",
		"stage", stageRetrieve,
		"count", len(docs))
	return docs
}

// generateAnswer runs the final model call with the rendered answer prompt
// and any conversation history supplied by the caller.
func (o *Orchestrator) generateAnswer(
	ctx context.Context,
	req QueryRequest,
	contextBlock string,
) (string, error) {
	messages := make([]llm.Message, 0, len(req.History)+1)
	for _, turn := range req.History {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: renderAnswerPrompt(req.Query, contextBlock),
	})

	resp, err := o.completionProv.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: generationTemperature,
	})
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}
