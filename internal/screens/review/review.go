// Package review implements the card review screen for all three study
// modes. The screen owns the Speed Run timer and feeds whole seconds into
// the session engine; all scoring and queue rules live in the engine.
package review

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/router"
	"github.com/ananya/studydeck/internal/screen"
	"github.com/ananya/studydeck/internal/screens/summary"
	"github.com/ananya/studydeck/internal/store"
	"github.com/ananya/studydeck/internal/study"
	"github.com/ananya/studydeck/internal/ui/components"
	"github.com/ananya/studydeck/internal/ui/layout"
)

// ReviewScreen implements screen.Screen for an active study session.
type ReviewScreen struct {
	session   *study.Session
	deckTitle string
	results   store.ResultRepo
	sessionID string
	startTime time.Time

	// timerSeq identifies the current Speed Run round. Ticks carrying an
	// older seq are stale and ignored.
	timerSeq int

	jump    components.TextInput
	jumping bool

	saved bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.StatusProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen over the given cards in the given mode.
func New(cards []deck.Card, deckTitle string, mode study.Mode, results store.ResultRepo) *ReviewScreen {
	return &ReviewScreen{
		session:   study.New(cards, mode),
		deckTitle: deckTitle,
		results:   results,
		sessionID: uuid.New().String(),
	}
}

// Init does not start a Speed Run round. The round (and its timer) begins
// only when the learner presses start from the pre-round prompt.
func (s *ReviewScreen) Init() tea.Cmd {
	s.startTime = time.Now()
	return nil
}

func (s *ReviewScreen) Title() string {
	switch s.session.Mode() {
	case study.ModeSpeedRun:
		return "Speed Run"
	case study.ModeSmartPractice:
		return "Smart Practice"
	default:
		return "Browse"
	}
}

// Status puts the deck title in the header while reviewing.
func (s *ReviewScreen) Status() string {
	return s.deckTitle
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.session.Empty() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.jumping {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.session.Completed() {
		return []layout.KeyHint{
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}

	switch s.session.Mode() {
	case study.ModeBrowse:
		hints := []layout.KeyHint{
			{Key: "←→", Description: "Card"},
			{Key: "Space", Description: "Reveal"},
			{Key: "/", Description: "Jump to card"},
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	case study.ModeSpeedRun:
		if sr, _ := s.session.Speed(); !sr.Active {
			return []layout.KeyHint{
				{Key: "Space", Description: "Start"},
				{Key: "Esc", Description: "Back"},
			}
		}
		if s.session.Revealed() {
			return []layout.KeyHint{
				{Key: "Y", Description: "Got it"},
				{Key: "N", Description: "Missed it"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Esc", Description: "Back"},
		}
	default: // Smart Practice
		if s.session.Revealed() {
			return []layout.KeyHint{
				{Key: "1", Description: "Hard"},
				{Key: "2", Description: "Good"},
				{Key: "3", Description: "Easy"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick(msg)

	case resultSavedMsg:
		// Persistence is best effort; a failed save never blocks review.
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *ReviewScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.timerSeq {
		return s, nil
	}

	s.session.Tick()
	if s.session.Completed() {
		return s, s.finish()
	}
	return s, s.tickCmd()
}

func (s *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session.Empty() {
		return s, nil
	}

	if s.jumping {
		switch key {
		case "esc":
			s.jumping = false
			return s, nil
		case "enter":
			s.jumping = false
			if n, err := s.jump.NumericValue(); err == nil {
				s.session.JumpTo(n - 1)
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}

	if key == "r" {
		return s.restart()
	}

	if s.session.Completed() {
		return s, nil
	}

	// Speed Run idles on a start prompt until the learner begins the round.
	if s.session.Mode() == study.ModeSpeedRun {
		if sr, _ := s.session.Speed(); !sr.Active {
			switch key {
			case "space", "enter":
				return s.startRound()
			}
			return s, nil
		}
	}

	switch key {
	case "space", "enter":
		s.session.Reveal()
		return s, nil
	}

	switch s.session.Mode() {
	case study.ModeBrowse:
		switch key {
		case "left", "h":
			s.session.Advance(study.Prev)
		case "right", "l":
			s.session.Advance(study.Next)
		case "/":
			s.jumping = true
			s.jump = components.NewTextInput("card #", true, 4)
			return s, s.jump.Init()
		}

	case study.ModeSpeedRun:
		switch key {
		case "y":
			s.session.AnswerSpeedRound(true)
		case "n":
			s.session.AnswerSpeedRound(false)
		}

	case study.ModeSmartPractice:
		switch key {
		case "1":
			s.session.RateSmartCard(study.RateHard)
		case "2":
			s.session.RateSmartCard(study.RateGood)
		case "3":
			s.session.RateSmartCard(study.RateEasy)
		}
		if s.session.Completed() {
			return s, s.finish()
		}
	}

	return s, nil
}

// startRound begins a Speed Run round and arms its timer.
func (s *ReviewScreen) startRound() (screen.Screen, tea.Cmd) {
	s.startTime = time.Now()
	s.session.StartTimedRound()
	s.timerSeq++
	return s, s.tickCmd()
}

// restart begins the session again: a fresh timed round for Speed Run, a
// full reset otherwise. A new timer sequence orphans any tick already in
// flight from the previous round.
func (s *ReviewScreen) restart() (screen.Screen, tea.Cmd) {
	s.saved = false
	s.startTime = time.Now()

	if s.session.Mode() == study.ModeSpeedRun && !s.session.Empty() {
		return s.startRound()
	}
	s.session.Restart()
	return s, nil
}

// finish persists the result once and pushes the summary screen.
func (s *ReviewScreen) finish() tea.Cmd {
	sum := study.Summarize(s.session, s.deckTitle, time.Since(s.startTime))

	cmds := []tea.Cmd{
		func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(sum)}
		},
	}

	if !s.saved && s.results != nil {
		s.saved = true
		results := s.results
		sessionID := s.sessionID
		cmds = append(cmds, func() tea.Msg {
			err := results.Append(context.Background(), store.StudyResult{
				SessionID:  sessionID,
				DeckTitle:  sum.DeckTitle,
				Mode:       sum.Mode.String(),
				CardsTotal: sum.CardsTotal,
				Score:      sum.Score,
				BestStreak: sum.BestStreak,
				Mastered:   sum.Mastered,
				DurationMs: sum.Duration.Milliseconds(),
			})
			return resultSavedMsg{Err: err}
		})
	}

	return tea.Batch(cmds...)
}

// tickCmd arms a 1-second tick carrying the current round sequence.
func (s *ReviewScreen) tickCmd() tea.Cmd {
	seq := s.timerSeq
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{Seq: seq, At: t}
	})
}
