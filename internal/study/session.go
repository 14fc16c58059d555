// Package study implements the review session engine: session state for the
// three study modes and the transition rules between states. The engine is
// pure: no clocks, timers, I/O, or logging. The caller owns the one-second
// timer for Speed Run and feeds elapsed seconds in through Tick.
package study

import "github.com/ananya/studydeck/internal/deck"

// Mode selects the review behavior for a session.
type Mode int

const (
	// ModeBrowse is unscored free navigation through all cards.
	ModeBrowse Mode = iota

	// ModeSpeedRun is a 60-second timed self-scoring round with streak bonuses.
	ModeSpeedRun

	// ModeSmartPractice is a self-paced mastery loop with difficulty-based
	// requeueing (hard/good/easy).
	ModeSmartPractice
)

// String returns the mode name used for display and persistence.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeSpeedRun:
		return "speed_run"
	case ModeSmartPractice:
		return "smart_practice"
	default:
		return "unknown"
	}
}

// Direction indicates navigation direction in Browse mode.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Rating is a self-assessed difficulty rating in Smart Practice.
type Rating int

const (
	RateHard Rating = iota
	RateGood
	RateEasy
)

const (
	// RoundSeconds is the Speed Run round length.
	RoundSeconds = 60

	// baseReward is the score for a correct answer before the streak bonus.
	baseReward = 10

	// streakBonus is the extra score per consecutive correct answer.
	streakBonus = 2

	// missPenalty is the score deducted for an incorrect answer.
	missPenalty = 5

	// hardReinsertIndex is where a hard-rated card re-enters the queue
	// (after removal), so it resurfaces within the next few cards.
	hardReinsertIndex = 2
)

// SpeedRun holds state that exists only during a Speed Run session.
type SpeedRun struct {
	// Active is true while the timed round is running.
	Active bool

	// SecondsLeft counts down from RoundSeconds to 0.
	SecondsLeft int

	// Score is the running score. Never negative.
	Score int

	// Streak counts consecutive correct answers; resets to 0 on a miss.
	Streak int

	// BestStreak is the longest streak reached this round.
	BestStreak int
}

// SmartPractice holds state that exists only during a Smart Practice session.
type SmartPractice struct {
	// Queue is the active review queue. The head is the card under review.
	Queue []deck.Card

	// Mastered counts cards rated easy and removed from the queue.
	Mastered int
}

// Session owns all mutable state for one review session. Exactly one of the
// mode substructures is non-nil outside Browse, so fields that make no sense
// for a mode cannot exist on it.
type Session struct {
	mode      Mode
	source    []deck.Card
	position  int
	revealed  bool
	completed bool
	speed     *SpeedRun
	smart     *SmartPractice
}

// New creates a session over cards in the given mode. An empty card list is
// a valid session; every operation on it is a no-op and Current reports no
// card.
func New(cards []deck.Card, mode Mode) *Session {
	s := &Session{}
	s.Reset(cards, mode)
	return s
}

// Reset replaces the card set and mode, discarding all progress. Switching
// mode mid-round stops any running Speed Run round (the caller must also
// drop its timer; stale ticks are ignored here regardless).
func (s *Session) Reset(cards []deck.Card, mode Mode) {
	s.mode = mode
	s.source = cards
	s.position = 0
	s.revealed = false
	s.completed = false
	s.speed = nil
	s.smart = nil

	switch mode {
	case ModeSpeedRun:
		s.speed = &SpeedRun{SecondsLeft: RoundSeconds}
	case ModeSmartPractice:
		queue := make([]deck.Card, len(cards))
		copy(queue, cards)
		s.smart = &SmartPractice{Queue: queue}
	}
}

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// Len returns the size of the source card set.
func (s *Session) Len() int { return len(s.source) }

// Empty reports whether the session has no cards at all.
func (s *Session) Empty() bool { return len(s.source) == 0 }

// Revealed reports whether the current card's back face is showing.
func (s *Session) Revealed() bool { return s.revealed }

// Completed reports whether the session reached its terminal state
// (timer expiry for Speed Run, empty queue for Smart Practice).
func (s *Session) Completed() bool { return s.completed }

// Position returns the index into the source cards (Browse and Speed Run).
func (s *Session) Position() int { return s.position }

// Current returns the card under review, or ok=false if there is none
// (empty session, or Smart Practice queue drained).
func (s *Session) Current() (deck.Card, bool) {
	if s.mode == ModeSmartPractice {
		if s.smart == nil || len(s.smart.Queue) == 0 {
			return deck.Card{}, false
		}
		return s.smart.Queue[0], true
	}
	if len(s.source) == 0 {
		return deck.Card{}, false
	}
	return s.source[s.position], true
}

// Speed returns a snapshot of Speed Run state; ok=false outside Speed Run.
func (s *Session) Speed() (SpeedRun, bool) {
	if s.speed == nil {
		return SpeedRun{}, false
	}
	return *s.speed, true
}

// Smart returns a snapshot of Smart Practice counters; ok=false outside
// Smart Practice. The returned queue length and mastered count are the
// renderer's "remaining / mastered" display.
func (s *Session) Smart() (remaining, mastered int, ok bool) {
	if s.smart == nil {
		return 0, 0, false
	}
	return len(s.smart.Queue), s.smart.Mastered, true
}

// Queue returns a copy of the Smart Practice queue, nil outside the mode.
func (s *Session) Queue() []deck.Card {
	if s.smart == nil {
		return nil
	}
	out := make([]deck.Card, len(s.smart.Queue))
	copy(out, s.smart.Queue)
	return out
}

// Reveal flips the current card to show its back face. No-op when already
// revealed, when there is no card, or when a Speed Run round isn't running.
func (s *Session) Reveal() {
	if s.completed {
		return
	}
	if _, ok := s.Current(); !ok {
		return
	}
	if s.mode == ModeSpeedRun && (s.speed == nil || !s.speed.Active) {
		return
	}
	s.revealed = true
}

// Advance moves to the next or previous card in Browse mode, wrapping
// circularly, and hides the back face. No-op in other modes.
func (s *Session) Advance(dir Direction) {
	if s.mode != ModeBrowse || len(s.source) == 0 {
		return
	}
	n := len(s.source)
	if dir == Next {
		s.position = (s.position + 1) % n
	} else {
		s.position = (s.position - 1 + n) % n
	}
	s.revealed = false
}

// JumpTo moves Browse directly to the card at index i (0-based). Out of
// range indices are ignored.
func (s *Session) JumpTo(i int) {
	if s.mode != ModeBrowse || i < 0 || i >= len(s.source) {
		return
	}
	s.position = i
	s.revealed = false
}

// StartTimedRound begins (or re-begins) a Speed Run round: full timer,
// zeroed score and streak, first card face down. No-op outside Speed Run
// or on an empty session.
func (s *Session) StartTimedRound() {
	if s.mode != ModeSpeedRun || len(s.source) == 0 {
		return
	}
	s.speed = &SpeedRun{Active: true, SecondsLeft: RoundSeconds}
	s.position = 0
	s.revealed = false
	s.completed = false
}

// Tick records one elapsed second of a running Speed Run round. At zero the
// round ends: Active drops and the session completes. Ticks outside a
// running round (stale timers, other modes) are ignored, so the function is
// idempotent once the round stops.
func (s *Session) Tick() {
	if s.mode != ModeSpeedRun || s.speed == nil || !s.speed.Active {
		return
	}
	s.speed.SecondsLeft--
	if s.speed.SecondsLeft <= 0 {
		s.speed.SecondsLeft = 0
		s.speed.Active = false
		s.completed = true
	}
}

// AnswerSpeedRound scores a self-graded answer and moves to the next card.
// Requires a running round and a revealed card; otherwise it is ignored.
// Correct answers earn
// 10 plus 2 per prior streak; misses cost 5 (score floors at 0) and reset
// the streak. The round does not wait between cards.
func (s *Session) AnswerSpeedRound(correct bool) {
	if s.mode != ModeSpeedRun || s.speed == nil || !s.speed.Active || !s.revealed {
		return
	}

	if correct {
		s.speed.Score += baseReward + streakBonus*s.speed.Streak
		s.speed.Streak++
		if s.speed.Streak > s.speed.BestStreak {
			s.speed.BestStreak = s.speed.Streak
		}
	} else {
		s.speed.Score -= missPenalty
		if s.speed.Score < 0 {
			s.speed.Score = 0
		}
		s.speed.Streak = 0
	}

	s.position = (s.position + 1) % len(s.source)
	s.revealed = false
}

// RateSmartCard applies a difficulty rating to the head of the Smart
// Practice queue. Requires a revealed card. Easy removes the card for good
// and counts it mastered; good sends it to the back of the queue; hard
// reinserts it near the front (index min(len, 2) of the post-removal queue)
// so it resurfaces within the next few cards. Draining the queue completes
// the session. A card is never duplicated by a rating.
func (s *Session) RateSmartCard(r Rating) {
	if s.mode != ModeSmartPractice || s.smart == nil || !s.revealed {
		return
	}
	if len(s.smart.Queue) == 0 {
		return
	}

	head := s.smart.Queue[0]
	rest := s.smart.Queue[1:]

	switch r {
	case RateEasy:
		s.smart.Queue = rest
		s.smart.Mastered++
	case RateGood:
		s.smart.Queue = append(rest, head)
	case RateHard:
		at := hardReinsertIndex
		if at > len(rest) {
			at = len(rest)
		}
		queue := make([]deck.Card, 0, len(rest)+1)
		queue = append(queue, rest[:at]...)
		queue = append(queue, head)
		queue = append(queue, rest[at:]...)
		s.smart.Queue = queue
	}

	s.revealed = false
	if len(s.smart.Queue) == 0 {
		s.completed = true
	}
}

// Restart clears a terminal state and begins the session again: a fresh
// timed round for Speed Run, a full reset for the other modes.
func (s *Session) Restart() {
	if s.mode == ModeSpeedRun {
		s.StartTimedRound()
		return
	}
	s.Reset(s.source, s.mode)
}
