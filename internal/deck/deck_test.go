package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDeck(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "bio.json", `{
		"title": "Cell Biology",
		"cards": [
			{"kind": "qa", "front": "What organelle produces ATP?", "back": "The mitochondrion"},
			{"kind": "definition", "front": "Osmosis", "back": "Diffusion of water across a membrane"}
		]
	}`)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Cell Biology" {
		t.Errorf("Title = %q", d.Title)
	}
	if len(d.Cards) != 2 {
		t.Fatalf("len(Cards) = %d, want 2", len(d.Cards))
	}
	if d.Cards[1].Kind != KindDefinition {
		t.Errorf("Cards[1].Kind = %q", d.Cards[1].Kind)
	}
}

func TestLoad_TitleFallsBackToFilename(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "organic-chem.json", `{"cards": []}`)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "organic-chem" {
		t.Errorf("Title = %q, want organic-chem", d.Title)
	}
}

func TestLoad_EmptyDeckIsValid(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "empty.json", `{"title": "Empty", "cards": []}`)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("empty deck rejected: %v", err)
	}
	if len(d.Cards) != 0 {
		t.Errorf("len(Cards) = %d, want 0", len(d.Cards))
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", `{"cards": [{"kind": "essay", "front": "a", "back": "b"}]}`},
		{"blank front", `{"cards": [{"kind": "qa", "front": "  ", "back": "b"}]}`},
		{"blank back", `{"cards": [{"kind": "qa", "front": "a", "back": ""}]}`},
		{"malformed json", `{"cards": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDeck(t, t.TempDir(), "bad.json", tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "zoology.json", `{"title": "Zoology", "cards": []}`)
	writeDeck(t, dir, "algebra.json", `{"title": "Algebra", "cards": []}`)
	writeDeck(t, dir, "notes.txt", `not a deck`)

	decks, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decks) != 2 {
		t.Fatalf("len(decks) = %d, want 2", len(decks))
	}
	// Sorted by title.
	if decks[0].Title != "Algebra" || decks[1].Title != "Zoology" {
		t.Errorf("order = %q, %q", decks[0].Title, decks[1].Title)
	}
}

func TestLoadDir_MissingDir(t *testing.T) {
	decks, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if decks != nil {
		t.Errorf("decks = %v, want nil", decks)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	d := &Deck{
		Title: "History",
		Cards: []Card{{Kind: KindQA, Front: "When did WW2 end?", Back: "1945"}},
	}
	path := filepath.Join(t.TempDir(), "history.json")
	if err := d.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Title != d.Title || len(loaded.Cards) != 1 || loaded.Cards[0].Back != "1945" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestFilterKind(t *testing.T) {
	d := &Deck{Cards: []Card{
		{Kind: KindQA, Front: "q1", Back: "a1"},
		{Kind: KindDefinition, Front: "t1", Back: "d1"},
		{Kind: KindQA, Front: "q2", Back: "a2"},
	}}

	qa := d.FilterKind(KindQA)
	if len(qa) != 2 {
		t.Errorf("len(qa) = %d, want 2", len(qa))
	}

	probs := d.FilterKind(KindProblem)
	if len(probs) != 0 {
		t.Errorf("len(probs) = %d, want 0 (empty is valid)", len(probs))
	}

	all := d.FilterKind("")
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
	// Filter returns a copy, not the deck's own slice.
	all[0].Front = "mutated"
	if d.Cards[0].Front != "q1" {
		t.Error("FilterKind leaked the deck's backing array")
	}
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind  Kind
		front string
		back  string
	}{
		{KindQA, "Question", "Answer"},
		{KindDefinition, "Term", "Definition"},
		{KindProblem, "Problem", "Solution"},
		{KindLongAnswer, "Prompt", "Model Answer"},
	}
	for _, tt := range tests {
		if got := tt.kind.FrontLabel(); got != tt.front {
			t.Errorf("%s FrontLabel = %q, want %q", tt.kind, got, tt.front)
		}
		if got := tt.kind.BackLabel(); got != tt.back {
			t.Errorf("%s BackLabel = %q, want %q", tt.kind, got, tt.back)
		}
	}
}
