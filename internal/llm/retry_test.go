package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// deckRequest mirrors the shape of a deck generation call: a system prompt,
// one user turn, and a structured output schema.
func deckRequest() Request {
	return Request{
		System: "You are a study assistant that writes flashcards.",
		Messages: []Message{
			{Role: RoleUser, Content: "Generate 2 flashcards about photosynthesis."},
		},
		Schema: &Schema{
			Name:        "flashcard-deck",
			Description: "A titled set of flashcards",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{"type": "string"},
					"cards": map[string]any{"type": "array"},
				},
				"required": []any{"title", "cards"},
			},
		},
		MaxTokens: 1024,
	}
}

const deckPayload = `{"title":"Photosynthesis","cards":[{"kind":"qa","front":"What pigment absorbs light?","back":"Chlorophyll"}]}`

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(deckPayload)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), deckRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != deckPayload {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(deckPayload)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), deckRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != deckPayload {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), deckRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), deckRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

// A deck generation that comes back as truncated JSON on the first attempt
// gets exactly one more try, and the learner sees the good deck.
func TestRetry_TruncatedDeckThenValid(t *testing.T) {
	truncated := json.RawMessage(`{"title":"Photosynthesis","cards":[{"kind":"qa","fro`)
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Content: truncated, Err: errors.New("unexpected end of JSON input")}},
		MockResponse{Content: json.RawMessage(deckPayload)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), deckRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}

	var got struct {
		Title string `json:"title"`
		Cards []struct {
			Front string `json:"front"`
		} `json:"cards"`
	}
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatalf("retried response is not a deck: %v", err)
	}
	if got.Title != "Photosynthesis" || len(got.Cards) != 1 {
		t.Fatalf("unexpected deck: %+v", got)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
		MockResponse{Content: json.RawMessage(deckPayload)}, // Won't be reached.
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), deckRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	// One retry, two calls total, then stop.
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(deckPayload)},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, deckRequest())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(deckPayload)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), deckRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != deckPayload {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mock, retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "flashcard",
		Definition: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"front": map[string]any{"type": "string"}},
			"required":             []any{"front"},
			"additionalProperties": false,
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"front":"What is ATP?"}`)); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err := validateResponse(schema, json.RawMessage(`{"back":"energy currency"}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}

	err = validateResponse(schema, json.RawMessage(`not json`))
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for malformed JSON, got: %v", err)
	}
}
