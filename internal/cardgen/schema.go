package cardgen

import "github.com/ananya/studydeck/internal/llm"

// DeckSchema defines the JSON schema for LLM deck generation responses.
var DeckSchema = &llm.Schema{
	Name:        "flashcard-deck",
	Description: "A titled set of flashcards, each with a kind, front, and back",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short deck title naming the topic, e.g. 'Cell Biology'",
			},
			"cards": map[string]any{
				"type":        "array",
				"description": "The generated flashcards",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"qa", "definition", "problem", "long_answer"},
							"description": "qa: direct question. definition: term on the front, meaning on the back. problem: exercise with a worked solution. long_answer: open prompt with a model answer.",
						},
						"front": map[string]any{
							"type":        "string",
							"description": "The prompt side shown first, in plain text",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "The answer side revealed on demand, in plain text",
						},
					},
					"required":             []any{"kind", "front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "cards"},
		"additionalProperties": false,
	},
}
