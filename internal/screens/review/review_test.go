package review

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ananya/studydeck/internal/deck"
	"github.com/ananya/studydeck/internal/store"
	"github.com/ananya/studydeck/internal/study"
)

// mockResultRepo implements store.ResultRepo for testing.
type mockResultRepo struct {
	appended []store.StudyResult
}

func (m *mockResultRepo) Append(_ context.Context, r store.StudyResult) error {
	m.appended = append(m.appended, r)
	return nil
}

func (m *mockResultRepo) List(_ context.Context, _ int) ([]store.StudyResult, error) {
	return nil, nil
}

func (m *mockResultRepo) BestScore(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCards() []deck.Card {
	return []deck.Card{
		{Kind: deck.KindQA, Front: "capital of France?", Back: "Paris"},
		{Kind: deck.KindQA, Front: "capital of Japan?", Back: "Tokyo"},
		{Kind: deck.KindQA, Front: "capital of Peru?", Back: "Lima"},
	}
}

func TestReviewScreen_Title(t *testing.T) {
	s := New(testCards(), "Capitals", study.ModeSpeedRun, nil)
	if s.Title() != "Speed Run" {
		t.Errorf("Title = %q, want %q", s.Title(), "Speed Run")
	}
}

func TestReviewScreen_SpeedRunIdlesUntilStarted(t *testing.T) {
	s := New(testCards(), "Capitals", study.ModeSpeedRun, nil)

	if cmd := s.Init(); cmd != nil {
		t.Error("no timer should be armed before the round is started")
	}

	sr, ok := s.session.Speed()
	if !ok {
		t.Fatal("expected Speed Run state")
	}
	if sr.Active {
		t.Error("round must not be active before the start keypress")
	}
	if s.session.Completed() {
		t.Error("idle round reported completed")
	}

	view := s.View(80, 24)
	if !strings.Contains(view, "start") {
		t.Error("expected the pre-round view to prompt for start")
	}

	// Answer keys do nothing before the round starts.
	s.Update(keyPress('y'))
	sr, _ = s.session.Speed()
	if sr.Active || sr.Score != 0 {
		t.Errorf("answer before start changed state: active=%v score=%d", sr.Active, sr.Score)
	}
}

func TestReviewScreen_SpaceStartsTheRound(t *testing.T) {
	s := New(testCards(), "Capitals", study.ModeSpeedRun, nil)
	s.Init()

	_, cmd := s.Update(specialKey(tea.KeySpace))
	if cmd == nil {
		t.Fatal("expected a timer command once the round starts")
	}

	sr, _ := s.session.Speed()
	if !sr.Active {
		t.Error("round should be active after start")
	}
	if sr.SecondsLeft != study.RoundSeconds {
		t.Errorf("SecondsLeft = %d, want %d", sr.SecondsLeft, study.RoundSeconds)
	}

	// Once running, space reveals and Y scores.
	s.Update(specialKey(tea.KeySpace))
	if !s.session.Revealed() {
		t.Error("expected card to be revealed")
	}
	s.Update(keyPress('y'))
	sr, _ = s.session.Speed()
	if sr.Score != 10 {
		t.Errorf("Score = %d, want 10", sr.Score)
	}
}

func TestReviewScreen_StaleTickIgnored(t *testing.T) {
	s := New(testCards(), "Capitals", study.ModeSpeedRun, nil)
	s.Init()
	s.Update(specialKey(tea.KeySpace))

	// A tick from before the round started carries an old sequence.
	s.Update(timerTickMsg{Seq: 0})

	sr, _ := s.session.Speed()
	if sr.SecondsLeft != study.RoundSeconds {
		t.Errorf("stale tick decremented the clock: SecondsLeft = %d", sr.SecondsLeft)
	}
}

func TestReviewScreen_KeyHintsBeforeStart(t *testing.T) {
	s := New(testCards(), "Capitals", study.ModeSpeedRun, nil)
	s.Init()

	hints := s.KeyHints()
	if len(hints) == 0 {
		t.Fatal("expected key hints")
	}
	if hints[0].Key != "Space" || hints[0].Description != "Start" {
		t.Errorf("first hint = %s/%s, want Space/Start", hints[0].Key, hints[0].Description)
	}
}

func TestReviewScreen_CompletionPersistsOnce(t *testing.T) {
	repo := &mockResultRepo{}
	s := New(testCards(), "Capitals", study.ModeSpeedRun, repo)
	s.Init()
	s.Update(specialKey(tea.KeySpace))

	// Run the clock out.
	var cmd tea.Cmd
	for i := 0; i < study.RoundSeconds; i++ {
		_, cmd = s.Update(timerTickMsg{Seq: 1})
	}

	if !s.session.Completed() {
		t.Fatal("expected the round to complete after the last tick")
	}
	if cmd == nil {
		t.Fatal("expected a finish command on completion")
	}

	// Execute the batched commands to trigger the save.
	runCmds(t, s, cmd)

	if len(repo.appended) != 1 {
		t.Fatalf("results appended = %d, want 1", len(repo.appended))
	}
	got := repo.appended[0]
	if got.DeckTitle != "Capitals" || got.Mode != "speed_run" {
		t.Errorf("unexpected result row: %+v", got)
	}
}

// runCmds executes a command tree, feeding any produced messages back into
// the screen.
func runCmds(t *testing.T, s *ReviewScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			runCmds(t, s, c)
		}
		return
	}
	s.Update(msg)
}
