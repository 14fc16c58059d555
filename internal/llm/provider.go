package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over LLM backends. Deck generation talks to
// this interface only; which SDK sits behind it is a configuration detail.
type Provider interface {
	// Generate sends a prompt and returns the model's output. When the
	// request carries a Schema the provider asks for structured JSON and the
	// response Content is the schema-validated object.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation. Deck generation is single turn, so this
	// usually holds exactly one user message.
	Messages []Message

	// Schema, when set, makes the provider use its native structured output
	// mechanism and the response is validated against it. When nil the
	// response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure the response must conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case, e.g. "flashcard-deck".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. With a Schema this is the validated
	// JSON object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is why generation stopped, normalized to
	// "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
