// Package cardgen generates flashcard decks from a topic or source notes
// using an LLM provider.
package cardgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// deckOutput is the raw LLM response before validation.
type deckOutput struct {
	Title string `json:"title"`
	Cards []struct {
		Kind  string `json:"kind"`
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"cards"`
}

// Generate produces a deck for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*deck.Deck, error) {
	ctx = llm.WithOperation(ctx, "deck_generation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      DeckSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw deckOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	d := &deck.Deck{Title: raw.Title}
	for _, c := range raw.Cards {
		d.Cards = append(d.Cards, deck.Card{
			Kind:  deck.Kind(c.Kind),
			Front: c.Front,
			Back:  c.Back,
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(d, input); verr != nil {
			return nil, verr
		}
	}

	return d, nil
}
