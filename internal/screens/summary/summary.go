// Package summary shows the end-of-session stats.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ananya/studydeck/internal/router"
	"github.com/ananya/studydeck/internal/screen"
	"github.com/ananya/studydeck/internal/study"
	"github.com/ananya/studydeck/internal/ui/layout"
	"github.com/ananya/studydeck/internal/ui/theme"
)

// SummaryScreen displays the outcome of a finished session.
type SummaryScreen struct {
	summary study.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the given summary.
func New(sum study.Summary) *SummaryScreen {
	return &SummaryScreen{summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

// Status puts the deck title in the header.
func (s *SummaryScreen) Status() string {
	return s.summary.DeckTitle
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var lines []string
	lines = append(lines,
		theme.Title.Render("SESSION COMPLETE"),
		"",
		statLine("Deck", sum.DeckTitle),
		statLine("Mode", modeLabel(sum.Mode)),
		statLine("Cards", fmt.Sprintf("%d", sum.CardsTotal)),
	)

	switch sum.Mode {
	case study.ModeSpeedRun:
		lines = append(lines,
			statLine("Score", fmt.Sprintf("%d", sum.Score)),
			statLine("Best streak", fmt.Sprintf("%d", sum.BestStreak)),
		)
	case study.ModeSmartPractice:
		lines = append(lines, statLine("Mastered", fmt.Sprintf("%d", sum.Mastered)))
	}

	lines = append(lines, statLine("Time", formatDuration(sum.Duration)))

	box := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

func statLine(label, value string) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-12s", label)) + theme.Body.Render(value)
}

func modeLabel(m study.Mode) string {
	switch m {
	case study.ModeSpeedRun:
		return "Speed Run"
	case study.ModeSmartPractice:
		return "Smart Practice"
	default:
		return "Browse"
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
