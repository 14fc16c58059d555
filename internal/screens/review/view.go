package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ananya/studydeck/internal/study"
	"github.com/ananya/studydeck/internal/ui/components"
	"github.com/ananya/studydeck/internal/ui/theme"
)

func (s *ReviewScreen) View(width, height int) string {
	if s.session.Empty() {
		return renderEmptyDeck(width, height)
	}
	if s.session.Completed() {
		return s.renderRoundOver(width, height)
	}
	if sr, ok := s.session.Speed(); ok && !sr.Active {
		return s.renderStartPrompt(width, height)
	}
	return s.renderCard(width, height)
}

// renderStartPrompt renders the Speed Run pre-round screen. The countdown
// only starts once the learner does.
func (s *ReviewScreen) renderStartPrompt(width, height int) string {
	lines := []string{
		theme.Title.Render("SPEED RUN"),
		"",
		theme.Body.Render(fmt.Sprintf("%d seconds on the clock, %d cards.", study.RoundSeconds, s.session.Len())),
		theme.Body.Render("+10 per correct answer, streak bonus on top, -5 per miss."),
		"",
		theme.Hint.Render("Space start · Esc back"),
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderEmptyDeck(width, height int) string {
	msg := theme.Hint.Render("No cards to review.\n\nThis deck (or kind filter) is empty.")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}

// renderCard renders the status line, the card front, and the back when
// revealed.
func (s *ReviewScreen) renderCard(width, height int) string {
	card, ok := s.session.Current()
	if !ok {
		return renderEmptyDeck(width, height)
	}

	cardWidth := width * 2 / 3
	if cardWidth < 40 {
		cardWidth = 40
	}
	if cardWidth > width-4 {
		cardWidth = width - 4
	}

	var sections []string

	sections = append(sections, s.renderStatus(cardWidth))
	sections = append(sections, "")

	front := components.CardFace{
		Label: card.Kind.FrontLabel(),
		Text:  card.Front,
		Width: cardWidth,
	}
	sections = append(sections, front.View())

	if s.session.Revealed() {
		back := components.CardFace{
			Label:    card.Kind.BackLabel(),
			Text:     card.Back,
			Width:    cardWidth,
			Revealed: true,
		}
		sections = append(sections, back.View())
	} else {
		sections = append(sections, theme.Hint.Render("press space to reveal"))
	}

	if s.jumping {
		sections = append(sections, "", "Jump to card: "+s.jump.View())
	}

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderStatus renders the per-mode status line above the card.
func (s *ReviewScreen) renderStatus(width int) string {
	switch s.session.Mode() {
	case study.ModeBrowse:
		return theme.Subtitle.Render(
			fmt.Sprintf("Card %d / %d", s.session.Position()+1, s.session.Len()))

	case study.ModeSpeedRun:
		sr, _ := s.session.Speed()
		timeStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		if sr.SecondsLeft <= 10 {
			timeStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		line := timeStyle.Render(fmt.Sprintf("⏱ 0:%02d", sr.SecondsLeft)) +
			theme.Subtitle.Render(fmt.Sprintf("   score %d", sr.Score))
		if sr.Streak > 1 {
			line += theme.Correct.Render(fmt.Sprintf("   %d streak!", sr.Streak))
		}
		return line

	default: // Smart Practice
		remaining, mastered, _ := s.session.Smart()
		total := remaining + mastered
		var pct float64
		if total > 0 {
			pct = float64(mastered) / float64(total)
		}
		bar := components.NewProgressBar("", pct, false, width/2)
		return theme.Subtitle.Render(fmt.Sprintf("%d left · %d mastered  ", remaining, mastered)) + bar.View()
	}
}

// renderRoundOver renders the terminal state before the summary is pushed
// (and again if the learner comes back from the summary).
func (s *ReviewScreen) renderRoundOver(width, height int) string {
	var lines []string

	switch s.session.Mode() {
	case study.ModeSpeedRun:
		sr, _ := s.session.Speed()
		lines = append(lines,
			theme.Title.Render("TIME!"),
			"",
			theme.Body.Render(fmt.Sprintf("Final score: %d", sr.Score)),
			theme.Body.Render(fmt.Sprintf("Best streak: %d", sr.BestStreak)),
		)
	case study.ModeSmartPractice:
		_, mastered, _ := s.session.Smart()
		lines = append(lines,
			theme.Title.Render("DECK CLEARED!"),
			"",
			theme.Body.Render(fmt.Sprintf("%d cards mastered", mastered)),
		)
	}

	lines = append(lines, "", theme.Hint.Render("R restart · Esc back"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
