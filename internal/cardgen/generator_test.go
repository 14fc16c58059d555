package cardgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/llm"
)

func validDeckJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Cell Biology",
		"cards": [
			{"kind": "qa", "front": "What organelle produces ATP?", "back": "The mitochondrion"},
			{"kind": "definition", "front": "Osmosis", "back": "Diffusion of water across a semipermeable membrane"},
			{"kind": "problem", "front": "A cell is placed in pure water. What happens and why?", "back": "Water enters by osmosis because the cytoplasm has higher solute concentration, so the cell swells."}
		]
	}`)
}

func TestGenerate_ValidDeck(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validDeckJSON(),
	})
	gen := New(mock, DefaultConfig())

	d, err := gen.Generate(context.Background(), Input{
		Topic: "Cell Biology",
		Count: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Cell Biology" {
		t.Errorf("unexpected title: %q", d.Title)
	}
	if len(d.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(d.Cards))
	}
	if d.Cards[1].Kind != deck.KindDefinition {
		t.Errorf("expected definition kind, got %q", d.Cards[1].Kind)
	}
}

func TestGenerate_PromptIncludesNotesAndCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validDeckJSON(),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{
		Topic: "Cell Biology",
		Notes: "The mitochondrion produces ATP.",
		Count: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "flashcard-deck" {
		t.Error("expected flashcard-deck schema on the request")
	}
	userMsg := req.Messages[0].Content
	if !strings.Contains(userMsg, "Cards: 3") {
		t.Errorf("prompt missing card count:\n%s", userMsg)
	}
	if !strings.Contains(userMsg, "The mitochondrion produces ATP.") {
		t.Errorf("prompt missing source notes:\n%s", userMsg)
	}
}

func TestGenerate_WrongCardCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validDeckJSON(),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Cell Biology", Count: 10})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Validator != "structural" {
		t.Errorf("expected structural failure, got %q", verr.Validator)
	}
}

func TestGenerate_KindRestriction(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validDeckJSON(),
	})
	gen := New(mock, DefaultConfig())

	// The canned deck contains qa, definition, and problem cards.
	_, err := gen.Generate(context.Background(), Input{
		Topic: "Cell Biology",
		Count: 3,
		Kinds: []deck.Kind{deck.KindQA},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
}

func TestGenerate_DuplicateFronts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "Dupes",
			"cards": [
				{"kind": "qa", "front": "What is ATP?", "back": "Energy currency"},
				{"kind": "qa", "front": "what is atp? ", "back": "Adenosine triphosphate"}
			]
		}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Dupes", Count: 2})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if verr.Validator != "duplicate" {
		t.Errorf("expected duplicate failure, got %q", verr.Validator)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Anything", Count: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable in chain, got: %v", err)
	}
}

func TestClipNotes(t *testing.T) {
	notes := strings.Repeat("line of notes\n", 100)
	clipped := clipNotes(notes, 200)
	if len(clipped) > 220 {
		t.Errorf("clipped notes too long: %d chars", len(clipped))
	}
	if !strings.HasSuffix(clipped, "[notes truncated]") {
		t.Error("expected truncation marker")
	}

	short := "short notes"
	if clipNotes(short, 200) != short {
		t.Error("short notes should pass through unchanged")
	}
}
