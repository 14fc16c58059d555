package components

import (
	"charm.land/lipgloss/v2"

	"github.com/ananya/studydeck/internal/ui/theme"
)

// CardFace renders one side of a flashcard as a bordered box with a small
// label (Question, Answer, Term, ...) above the text.
type CardFace struct {
	Label    string
	Text     string
	Width    int
	Revealed bool // answer faces get the accent border
}

// View renders the card face.
func (c CardFace) View() string {
	borderColor := theme.Border
	if c.Revealed {
		borderColor = theme.Secondary
	}

	label := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true).
		Render(c.Label)

	innerWidth := c.Width - 6
	if innerWidth < 10 {
		innerWidth = 10
	}

	text := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(innerWidth).
		Render(c.Text)

	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(c.Width).
		Render(label + "\n\n" + text)
}
