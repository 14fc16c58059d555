package store

import (
	"context"
	"time"
)

// StudyResult is one finished session's outcome.
type StudyResult struct {
	ID         int64
	SessionID  string
	DeckTitle  string
	Mode       string
	CardsTotal int
	Score      int
	BestStreak int
	Mastered   int
	DurationMs int64
	CreatedAt  time.Time
}

// ResultRepo persists and queries study results.
type ResultRepo interface {
	// Append records a finished session.
	Append(ctx context.Context, r StudyResult) error

	// List returns the most recent results, newest first, up to limit.
	List(ctx context.Context, limit int) ([]StudyResult, error)

	// BestScore returns the highest Speed Run score recorded for the deck,
	// or 0 when none exists.
	BestScore(ctx context.Context, deckTitle string) (int, error)
}

// LLMRequestRecord is one logged LLM API call.
type LLMRequestRecord struct {
	ID           int64
	Model        string
	Operation    string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	CreatedAt    time.Time
}

// LLMRequestRepo persists the LLM request log.
type LLMRequestRepo interface {
	// Append records one LLM API call, successful or not.
	Append(ctx context.Context, rec LLMRequestRecord) error

	// Recent returns the most recent records, newest first, up to limit.
	Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error)
}
