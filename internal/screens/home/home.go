// Package home implements the deck picker and mode menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/router"
	"github.com/ananya/studydeck/internal/screen"
	"github.com/ananya/studydeck/internal/screens/history"
	"github.com/ananya/studydeck/internal/screens/review"
	"github.com/ananya/studydeck/internal/store"
	"github.com/ananya/studydeck/internal/study"
	"github.com/ananya/studydeck/internal/ui/components"
	"github.com/ananya/studydeck/internal/ui/layout"
	"github.com/ananya/studydeck/internal/ui/theme"
)

// kindFilters cycles "" (all kinds) plus each card kind.
var kindFilters = append([]deck.Kind{""}, deck.Kinds()...)

// HomeScreen is the main screen: deck selection, kind filter, and mode menu.
type HomeScreen struct {
	decks   []*deck.Deck
	deckIdx int
	kindIdx int
	results store.ResultRepo
	menu    components.Menu

	bestScore int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen over the loaded decks.
func New(decks []*deck.Deck, results store.ResultRepo) *HomeScreen {
	h := &HomeScreen{
		decks:   decks,
		results: results,
	}

	items := []components.MenuItem{
		{Label: "BROWSE", Action: h.startAction(study.ModeBrowse)},
		{Label: "SPEED RUN", Action: h.startAction(study.ModeSpeedRun)},
		{Label: "SMART PRACTICE", Action: h.startAction(study.ModeSmartPractice)},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(results)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refreshBestScore()
	return h
}

func (h *HomeScreen) startAction(mode study.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		d := h.currentDeck()
		if d == nil {
			return nil
		}
		cards := d.FilterKind(h.currentKind())
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: review.New(cards, d.Title, mode, h.results),
			}
		}
	}
}

func (h *HomeScreen) currentDeck() *deck.Deck {
	if len(h.decks) == 0 {
		return nil
	}
	return h.decks[h.deckIdx]
}

func (h *HomeScreen) currentKind() deck.Kind {
	return kindFilters[h.kindIdx]
}

// refreshBestScore loads the current deck's Speed Run high score.
func (h *HomeScreen) refreshBestScore() {
	h.bestScore = 0
	d := h.currentDeck()
	if d == nil || h.results == nil {
		return
	}
	if best, err := h.results.BestScore(context.Background(), d.Title); err == nil {
		h.bestScore = best
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Deck"},
		{Key: "Tab", Description: "Card kind"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "left", "h":
			if len(h.decks) > 1 {
				h.deckIdx = (h.deckIdx - 1 + len(h.decks)) % len(h.decks)
				h.refreshBestScore()
			}
			return h, nil
		case "right", "l":
			if len(h.decks) > 1 {
				h.deckIdx = (h.deckIdx + 1) % len(h.decks)
				h.refreshBestScore()
			}
			return h, nil
		case "tab":
			h.kindIdx = (h.kindIdx + 1) % len(kindFilters)
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("STUDYDECK"))
	sections = append(sections, theme.Subtitle.Width(width).Render("flashcards for your terminal"))
	sections = append(sections, "")

	d := h.currentDeck()
	if d == nil {
		empty := theme.Hint.Width(width).Align(lipgloss.Center).Render(
			"No decks found.\n\nPut deck JSON files in your deck directory,\nor create one with: studydeck gen")
		return strings.Join(append(sections, "", empty), "\n")
	}

	cards := d.FilterKind(h.currentKind())
	kindLabel := "all kinds"
	if k := h.currentKind(); k != "" {
		kindLabel = k.DisplayName()
	}

	deckLine := fmt.Sprintf("◂ %s ▸", d.Title)
	infoLine := fmt.Sprintf("%d cards · %s", len(cards), kindLabel)
	if h.bestScore > 0 {
		infoLine += fmt.Sprintf(" · best %d", h.bestScore)
	}

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Width(width).Align(lipgloss.Center).Render(deckLine),
		theme.Subtitle.Width(width).Render(infoLine),
		"",
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(h.menu.View()),
	)

	content := strings.Join(sections, "\n")
	return lipgloss.NewStyle().Height(height).Render(content)
}
