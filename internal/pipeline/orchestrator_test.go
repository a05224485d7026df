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
	"errors"
	"strings"
	"testing"

	"github.com/huyiling521/CS6120-NutriRAG/internal/database"
	"github.com/huyiling521/CS6120-NutriRAG/internal/llm"
)

// MockEmbeddingProvider implements llm.EmbeddingProvider for testing.
type MockEmbeddingProvider struct {
	EmbedFunc      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFunc func(ctx context.Context, texts []string) ([][]float32, error)
	DimensionsVal  int
	ModelNameVal   string
}

func (m *MockEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *MockEmbeddingProvider) EmbedBatch(
	ctx context.Context,
	texts []string,
) ([][]float32, error) {
	if m.EmbedBatchFunc != nil {
		return m.EmbedBatchFunc(ctx, texts)
	}
	results := make([][]float32, len(texts))
	for i := range texts {
		results[i] = []float32{0.1, 0.2, 0.3}
	}
	return results, nil
}

func (m *MockEmbeddingProvider) Dimensions() int {
	if m.DimensionsVal > 0 {
		return m.DimensionsVal
	}
	return 1536
}

func (m *MockEmbeddingProvider) ModelName() string {
	if m.ModelNameVal != "" {
		return m.ModelNameVal
	}
	return "mock-embedding-model"
}

// MockCompletionProvider implements llm.CompletionProvider for testing.
type MockCompletionProvider struct {
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
	ModelNameVal string
}

func (m *MockCompletionProvider) Complete(
	ctx context.Context,
	req llm.CompletionRequest,
) (*llm.CompletionResponse, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &llm.CompletionResponse{
		Content:      "This is a mock response.",
		FinishReason: "stop",
	}, nil
}

func (m *MockCompletionProvider) ModelName() string {
	if m.ModelNameVal != "" {
		return m.ModelNameVal
	}
	return "mock-completion-model"
}

// MockRetriever implements Retriever for testing.
type MockRetriever struct {
	SearchFunc func(ctx context.Context, embedding []float32, k int) ([]database.Document, error)
}

func (m *MockRetriever) SimilaritySearch(
	ctx context.Context,
	embedding []float32,
	k int,
) ([]database.Document, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, embedding, k)
	}
	return nil, nil
}

// Markers that identify which prompt a completion request carries. Each
// prompt template contains exactly one of these.
const (
	intentMarker  = "# User Query to Analyze:"
	rewriteMarker = "expert at rewriting"
	answerMarker  = "--- START CONTEXT ---"
)

// stageDispatch routes mock completion calls to per-stage handlers by
// inspecting the rendered prompt, and counts calls per stage.
type stageDispatch struct {
	intentCalls  int
	rewriteCalls int
	answerCalls  int

	onIntent  func(req llm.CompletionRequest) (*llm.CompletionResponse, error)
	onRewrite func(req llm.CompletionRequest) (*llm.CompletionResponse, error)
	onAnswer  func(req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (d *stageDispatch) complete(
	_ context.Context,
	req llm.CompletionRequest,
) (*llm.CompletionResponse, error) {
	prompt := req.Messages[len(req.Messages)-1].Content
	switch {
	case strings.Contains(prompt, intentMarker):
		d.intentCalls++
		return d.onIntent(req)
	case strings.Contains(prompt, rewriteMarker):
		d.rewriteCalls++
		return d.onRewrite(req)
	case strings.Contains(prompt, answerMarker):
		d.answerCalls++
		return d.onAnswer(req)
	default:
		return nil, errors.New("unrecognized prompt")
	}
}

func respond(content string) func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return &llm.CompletionResponse{Content: content, FinishReason: "stop"}, nil
	}
}

func fail(msg string) func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return func(llm.CompletionRequest) (*llm.CompletionResponse, error) {
		return nil, errors.New(msg)
	}
}

func newTestOrchestrator(
	dispatch *stageDispatch,
	embedding *MockEmbeddingProvider,
	retriever *MockRetriever,
) *Orchestrator {
	if embedding == nil {
		embedding = &MockEmbeddingProvider{}
	}
	if retriever == nil {
		retriever = &MockRetriever{}
	}
	return NewOrchestrator(OrchestratorConfig{
		Retriever:         retriever,
		EmbeddingProv:     embedding,
		CompletionProv:    &MockCompletionProvider{CompleteFunc: dispatch.complete},
		TopK:              5,
		SnippetMaxLen:     250,
		IngredientsMaxLen: 100,
	})
}

const chickenIntentJSON = `{
    "cleaned_query": "I want a low-carb, high-protein dinner recipe using chicken breast.",
    "intent": "find_recipe",
    "entities": {
        "ingredients": ["chicken breast"],
        "dietary_restrictions_preferences": ["low-carb", "high-protein"],
        "meal_type": ["dinner"]
    }
}`

func TestExecuteFullPipeline(t *testing.T) {
	var answerPrompt string
	dispatch := &stageDispatch{
		onIntent:  respond(chickenIntentJSON),
		onRewrite: respond(`Optimized Search Query: "low-carb high-protein chicken breast dinner recipe"`),
		onAnswer: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			answerPrompt = req.Messages[len(req.Messages)-1].Content
			return &llm.CompletionResponse{Content: "Try a grilled chicken salad.", FinishReason: "stop"}, nil
		},
	}
	retriever := &MockRetriever{
		SearchFunc: func(_ context.Context, _ []float32, k int) ([]database.Document, error) {
			if k != 5 {
				t.Errorf("expected k=5, got %d", k)
			}
			return []database.Document{
				{ID: "1", Name: "Grilled Chicken Salad", Preview: "A light dinner salad.", Ingredients: "chicken breast, greens", Score: 0.91, Rank: 1},
			}, nil
		},
	}

	result := newTestOrchestrator(dispatch, nil, retriever).
		Execute(context.Background(), QueryRequest{Query: "I want a low-carb, high-protein dinner recipe using chicken breast."})

	if result.Answer != "Try a grilled chicken salad." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if result.Intent != IntentFindRecipe {
		t.Errorf("expected intent %q, got %q", IntentFindRecipe, result.Intent)
	}
	if result.SemanticQuery != "low-carb high-protein chicken breast dinner recipe" {
		t.Errorf("unexpected semantic query: %q", result.SemanticQuery)
	}
	if got := result.Entities["ingredients"]; len(got) != 1 || got[0] != "chicken breast" {
		t.Errorf("unexpected ingredients: %v", got)
	}
	if !strings.Contains(answerPrompt, "Grilled Chicken Salad") {
		t.Error("answer prompt should contain the retrieved recipe name")
	}
	if dispatch.intentCalls != 1 || dispatch.rewriteCalls != 1 || dispatch.answerCalls != 1 {
		t.Errorf("expected one call per stage, got %d/%d/%d",
			dispatch.intentCalls, dispatch.rewriteCalls, dispatch.answerCalls)
	}
}

func TestExecuteIntentCallFailureSkipsRewrite(t *testing.T) {
	dispatch := &stageDispatch{
		onIntent:  fail("model unavailable"),
		onRewrite: respond("should not be called"),
		onAnswer:  respond("Here is some general advice."),
	}

	result := newTestOrchestrator(dispatch, nil, nil).
		Execute(context.Background(), QueryRequest{Query: "  what should I eat?  "})

	if result.Intent != IntentUnknown {
		t.Errorf("expected intent %q, got %q", IntentUnknown, result.Intent)
	}
	if len(result.Entities) != 0 {
		t.Errorf("expected empty entities, got %v", result.Entities)
	}
	if result.SemanticQuery != "what should I eat?" {
		t.Errorf("expected original query as semantic query, got %q", result.SemanticQuery)
	}
	if result.Answer != "Here is some general advice." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if dispatch.rewriteCalls != 0 {
		t.Errorf("rewrite should be skipped on extraction fallback, got %d calls", dispatch.rewriteCalls)
	}
}

func TestExecuteMalformedIntentOutputSkipsRewrite(t *testing.T) {
	dispatch := &stageDispatch{
		onIntent:  respond("```json\n{\"intent\": \"find_recipe\"}\n```"),
		onRewrite: respond("should not be called"),
		onAnswer:  respond("answer"),
	}

	result := newTestOrchestrator(dispatch, nil, nil).
		Execute(context.Background(), QueryRequest{Query: "quick pasta recipe"})

	if result.Intent != IntentUnknown {
		t.Errorf("expected intent %q, got %q", IntentUnknown, result.Intent)
	}
	if result.SemanticQuery != "quick pasta recipe" {
		t.Errorf("unexpected semantic query: %q", result.SemanticQuery)
	}
	if dispatch.rewriteCalls != 0 {
		t.Errorf("rewrite should be skipped on malformed output, got %d calls", dispatch.rewriteCalls)
	}
}

func TestExecuteRewriteFailureHaltsBeforeRetrieval(t *testing.T) {
	dispatch := &stageDispatch{
		onIntent:  respond(chickenIntentJSON),
		onRewrite: fail("model unavailable"),
		onAnswer:  respond("should not be called"),
	}
	retrieved := false
	retriever := &MockRetriever{
		SearchFunc: func(context.Context, []float32, int) ([]database.Document, error) {
			retrieved = true
			return nil, nil
		},
	}

	result := newTestOrchestrator(dispatch, nil, retriever).
		Execute(context.Background(), QueryRequest{Query: "chicken dinner"})

	if result.Answer != AnswerCannotProcess {
		t.Errorf("expected %q, got %q", AnswerCannotProcess, result.Answer)
	}
	if result.Intent != IntentFindRecipe {
		t.Errorf("intent should survive a rewrite failure, got %q", result.Intent)
	}
	if result.SemanticQuery != "" {
		t.Errorf("expected empty semantic query, got %q", result.SemanticQuery)
	}
	if retrieved {
		t.Error("retrieval should not run after a rewrite failure")
	}
	if dispatch.answerCalls != 0 {
		t.Errorf("generation should not run after a rewrite failure, got %d calls", dispatch.answerCalls)
	}
}

func TestExecuteRetrievalFailureStillAnswers(t *testing.T) {
	tests := []struct {
		name      string
		embedding *MockEmbeddingProvider
		retriever *MockRetriever
	}{
		{
			name: "embedding error",
			embedding: &MockEmbeddingProvider{
				EmbedFunc: func(context.Context, string) ([]float32, error) {
					return nil, errors.New("embedding service down")
				},
			},
			retriever: &MockRetriever{},
		},
		{
			name:      "search error",
			embedding: &MockEmbeddingProvider{},
			retriever: &MockRetriever{
				SearchFunc: func(context.Context, []float32, int) ([]database.Document, error) {
					return nil, errors.New("database unavailable")
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var answerPrompt string
			dispatch := &stageDispatch{
				onIntent:  respond(chickenIntentJSON),
				onRewrite: respond("chicken breast dinner recipe"),
				onAnswer: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
					answerPrompt = req.Messages[len(req.Messages)-1].Content
					return &llm.CompletionResponse{Content: "General chicken advice.", FinishReason: "stop"}, nil
				},
			}

			result := newTestOrchestrator(dispatch, tt.embedding, tt.retriever).
				Execute(context.Background(), QueryRequest{Query: "chicken dinner"})

			if result.Answer != "General chicken advice." {
				t.Errorf("unexpected answer: %q", result.Answer)
			}
			if !strings.Contains(answerPrompt, NoContextFound) {
				t.Error("answer prompt should contain the no-context placeholder")
			}
		})
	}
}

func TestExecuteGenerationFailure(t *testing.T) {
	dispatch := &stageDispatch{
		onIntent:  respond(chickenIntentJSON),
		onRewrite: respond("chicken breast dinner recipe"),
		onAnswer:  fail("model unavailable"),
	}

	result := newTestOrchestrator(dispatch, nil, nil).
		Execute(context.Background(), QueryRequest{Query: "chicken dinner"})

	if result.Answer != AnswerGenerationFailed {
		t.Errorf("expected %q, got %q", AnswerGenerationFailed, result.Answer)
	}
	if result.Intent != IntentFindRecipe {
		t.Errorf("intent should survive a generation failure, got %q", result.Intent)
	}
	if result.SemanticQuery != "chicken breast dinner recipe" {
		t.Errorf("semantic query should survive a generation failure, got %q", result.SemanticQuery)
	}
}

func TestExecuteForwardsHistory(t *testing.T) {
	var messages []llm.Message
	dispatch := &stageDispatch{
		onIntent:  respond(chickenIntentJSON),
		onRewrite: respond("chicken breast dinner recipe"),
		onAnswer: func(req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			messages = req.Messages
			return &llm.CompletionResponse{Content: "answer", FinishReason: "stop"}, nil
		},
	}

	history := []Message{
		{Role: llm.RoleUser, Content: "I am vegetarian."},
		{Role: llm.RoleAssistant, Content: "Noted, I will avoid meat."},
	}
	newTestOrchestrator(dispatch, nil, nil).
		Execute(context.Background(), QueryRequest{Query: "what about dinner?", History: history})

	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Content != "I am vegetarian." || messages[1].Role != llm.RoleAssistant {
		t.Error("history should precede the rendered prompt")
	}
	if !strings.Contains(messages[2].Content, "what about dinner?") {
		t.Error("final message should carry the rendered answer prompt")
	}
}
