// Package history lists recent study results from the store.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ananya/studydeck/internal/screen"
	"github.com/ananya/studydeck/internal/store"
	"github.com/ananya/studydeck/internal/ui/layout"
	"github.com/ananya/studydeck/internal/ui/theme"
)

const historyLimit = 20

// resultsLoadedMsg carries the loaded results (or the load error).
type resultsLoadedMsg struct {
	Results []store.StudyResult
	Err     error
}

// HistoryScreen shows the most recent session results.
type HistoryScreen struct {
	results store.ResultRepo
	rows    []store.StudyResult
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by the given repo.
func New(results store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{results: results}
}

func (h *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if h.results == nil {
			return resultsLoadedMsg{}
		}
		rows, err := h.results.List(context.Background(), historyLimit)
		return resultsLoadedMsg{Results: rows, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(resultsLoadedMsg); ok {
		h.loaded = true
		h.rows = m.Results
		if m.Err != nil {
			h.errMsg = m.Err.Error()
		}
		return h, nil
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if h.errMsg != "" {
		return center.Render(theme.Incorrect.Render("Could not load history: " + h.errMsg))
	}
	if !h.loaded {
		return center.Render(theme.Hint.Render("Loading..."))
	}
	if len(h.rows) == 0 {
		return center.Render(theme.Hint.Render("No sessions yet. Finish a Speed Run or Smart Practice\nsession and it will show up here."))
	}

	var lines []string
	lines = append(lines, theme.Subtitle.Render(
		fmt.Sprintf("%-19s  %-20s  %-14s  %s", "WHEN", "DECK", "MODE", "RESULT")))

	for _, r := range h.rows {
		lines = append(lines, theme.Body.Render(fmt.Sprintf(
			"%-19s  %-20s  %-14s  %s",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(r.DeckTitle, 20),
			modeLabel(r.Mode),
			resultLabel(r),
		)))
	}

	return center.Render(strings.Join(lines, "\n"))
}

func resultLabel(r store.StudyResult) string {
	switch r.Mode {
	case "speed_run":
		return fmt.Sprintf("score %d (streak %d)", r.Score, r.BestStreak)
	case "smart_practice":
		return fmt.Sprintf("%d/%d mastered in %s", r.Mastered, r.CardsTotal, formatMillis(r.DurationMs))
	default:
		return fmt.Sprintf("%d cards", r.CardsTotal)
	}
}

func modeLabel(mode string) string {
	switch mode {
	case "speed_run":
		return "Speed Run"
	case "smart_practice":
		return "Smart Practice"
	default:
		return "Browse"
	}
}

func formatMillis(ms int64) string {
	d := (time.Duration(ms) * time.Millisecond).Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
