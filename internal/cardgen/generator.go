package cardgen

import (
	"context"

	"github.com/ananya/studydeck/internal/deck"
)

// Generator produces flashcard decks using an LLM provider.
type Generator interface {
	// Generate produces a deck for the given input. All configured
	// validators are run before returning.
	Generate(ctx context.Context, input Input) (*deck.Deck, error)
}
