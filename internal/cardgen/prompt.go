package cardgen

import (
	"fmt"
	"strings"

	"github.com/ananya/studydeck/internal/deck"
)

const systemPrompt = `You are a study assistant creating flashcards for self-testing.

Rules:
- Generate exactly the requested number of cards for the given topic.
- Use plain text on both faces. No markdown, no LaTeX, no Unicode math symbols.
- The front must be answerable on its own; never reference "the notes" or "the text above".
- The back must fully answer the front, concise but complete.
- Use "qa" for direct factual questions, "definition" for term/meaning pairs, "problem" for exercises that need a worked solution on the back, and "long_answer" for open prompts with a short model answer.
- When source notes are provided, draw every card from the notes and nothing else.
- No two cards may ask the same thing in different words.`

// buildUserMessage constructs the user message from the Input and Config
// limits.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Cards: %d\n", input.Count)
	fmt.Fprintf(&b, "Allowed kinds: %s\n", kindList(input.Kinds))

	if input.Notes != "" {
		b.WriteString("\nSource notes:\n")
		b.WriteString(clipNotes(input.Notes, cfg.MaxNoteChars))
		b.WriteString("\n")
	}

	return b.String()
}

func kindList(kinds []deck.Kind) string {
	if len(kinds) == 0 {
		kinds = deck.Kinds()
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// clipNotes truncates notes to max characters at a line boundary where
// possible.
func clipNotes(notes string, max int) string {
	if max <= 0 || len(notes) <= max {
		return notes
	}
	clipped := notes[:max]
	if i := strings.LastIndexByte(clipped, '\n'); i > max/2 {
		clipped = clipped[:i]
	}
	return clipped + "\n[notes truncated]"
}
