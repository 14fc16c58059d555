package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Deck is an ordered collection of flashcards loaded from a deck file.
type Deck struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Load reads and validates a deck from a JSON file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse deck file %s: %w", filepath.Base(path), err)
	}

	if d.Title == "" {
		d.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("deck %s: %w", d.Title, err)
	}
	return &d, nil
}

// LoadDir loads every *.json deck in dir, sorted by title. A missing
// directory is treated as no decks, not an error.
func LoadDir(dir string) ([]*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read deck dir: %w", err)
	}

	var decks []*Deck
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		d, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].Title < decks[j].Title })
	return decks, nil
}

// Save writes the deck as JSON to path, creating parent directories.
func (d *Deck) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write deck file: %w", err)
	}
	return nil
}

// Validate checks every card for a known kind and non-blank faces.
// An empty card list is valid; the review UI renders it as an empty state.
func (d *Deck) Validate() error {
	for i, c := range d.Cards {
		if !c.Kind.Valid() {
			return fmt.Errorf("card %d: unknown kind %q", i+1, c.Kind)
		}
		if strings.TrimSpace(c.Front) == "" {
			return fmt.Errorf("card %d: blank front", i+1)
		}
		if strings.TrimSpace(c.Back) == "" {
			return fmt.Errorf("card %d: blank back", i+1)
		}
	}
	return nil
}

// FilterKind returns a copy of the deck's cards restricted to the given
// kind. An empty kind means no filter. The result may be empty; that is a
// valid state, never an error.
func (d *Deck) FilterKind(kind Kind) []Card {
	if kind == "" {
		out := make([]Card, len(d.Cards))
		copy(out, d.Cards)
		return out
	}
	var out []Card
	for _, c := range d.Cards {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
