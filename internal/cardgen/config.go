package cardgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated deck. They execute in order; the first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxNoteChars caps how much of the source notes is sent in the
	// prompt. Zero means no cap.
	MaxNoteChars int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:    4096,
		Temperature:  0.7,
		MaxNoteChars: 24000,
	}
}
