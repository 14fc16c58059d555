package cardgen

import "github.com/ananya/studydeck/internal/deck"

// Input holds all context needed to generate a deck.
type Input struct {
	// Topic is the subject of the deck, e.g. "Cell Biology".
	Topic string

	// Notes is optional source material. When present, cards are drawn from
	// it instead of the model's general knowledge.
	Notes string

	// Count is how many cards to generate.
	Count int

	// Kinds restricts the card kinds to generate. Empty means any kind.
	Kinds []deck.Kind
}
