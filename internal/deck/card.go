package deck

// Kind classifies a flashcard's content. It determines how the two faces
// are labeled in the UI, nothing else.
type Kind string

const (
	KindQA         Kind = "qa"
	KindDefinition Kind = "definition"
	KindProblem    Kind = "problem"
	KindLongAnswer Kind = "long_answer"
)

// Card is a single immutable flashcard. The study engine never creates or
// edits cards, only reorders, filters, and copies them.
type Card struct {
	Kind  Kind   `json:"kind"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Valid reports whether k is a known card kind.
func (k Kind) Valid() bool {
	switch k {
	case KindQA, KindDefinition, KindProblem, KindLongAnswer:
		return true
	}
	return false
}

// FrontLabel returns the display label for the front face.
func (k Kind) FrontLabel() string {
	switch k {
	case KindDefinition:
		return "Term"
	case KindProblem:
		return "Problem"
	case KindLongAnswer:
		return "Prompt"
	default:
		return "Question"
	}
}

// BackLabel returns the display label for the back face.
func (k Kind) BackLabel() string {
	switch k {
	case KindDefinition:
		return "Definition"
	case KindProblem:
		return "Solution"
	case KindLongAnswer:
		return "Model Answer"
	default:
		return "Answer"
	}
}

// DisplayName returns a human-readable name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindQA:
		return "Q&A"
	case KindDefinition:
		return "Definitions"
	case KindProblem:
		return "Problems"
	case KindLongAnswer:
		return "Long Answer"
	default:
		return string(k)
	}
}

// Kinds lists all card kinds in display order.
func Kinds() []Kind {
	return []Kind{KindQA, KindDefinition, KindProblem, KindLongAnswer}
}
