package cardgen

import (
	"fmt"
	"strings"

	"github.com/ananya/studydeck/internal/deck"
)

// Validator checks a generated deck for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "duplicate".
	Name() string

	// Validate checks the deck and returns nil if it passes, or a
	// ValidationError describing the failure. The validator receives the
	// full Input for context (requested count, allowed kinds).
	Validate(d *deck.Deck, input Input) *ValidationError
}

// ValidationError describes why a deck failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that the deck has a title, the requested card
// count, and that every card has a valid kind and non-blank faces.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(d *deck.Deck, input Input) *ValidationError {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "title is empty",
			Retryable: true,
		}
	}
	if input.Count > 0 && len(d.Cards) != input.Count {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d cards, got %d", input.Count, len(d.Cards)),
			Retryable: true,
		}
	}
	for i, c := range d.Cards {
		if !c.Kind.Valid() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d: unknown kind %q", i+1, c.Kind),
				Retryable: true,
			}
		}
		if len(input.Kinds) > 0 && !kindAllowed(c.Kind, input.Kinds) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d: kind %q not among requested kinds", i+1, c.Kind),
				Retryable: true,
			}
		}
		if strings.TrimSpace(c.Front) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d: blank front", i+1),
				Retryable: true,
			}
		}
		if strings.TrimSpace(c.Back) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("card %d: blank back", i+1),
				Retryable: true,
			}
		}
	}
	return nil
}

// DuplicateValidator rejects decks where two cards share the same front.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(d *deck.Deck, _ Input) *ValidationError {
	seen := make(map[string]int, len(d.Cards))
	for i, c := range d.Cards {
		key := strings.ToLower(strings.TrimSpace(c.Front))
		if prev, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("cards %d and %d have the same front", prev+1, i+1),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}

func kindAllowed(k deck.Kind, allowed []deck.Kind) bool {
	for _, a := range allowed {
		if k == a {
			return true
		}
	}
	return false
}
