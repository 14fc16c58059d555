package study

import "time"

// Summary captures the outcome of a completed session for display and
// persistence. The engine itself keeps no clock; the caller supplies the
// wall duration.
type Summary struct {
	Mode       Mode
	DeckTitle  string
	CardsTotal int
	Score      int
	BestStreak int
	Mastered   int
	Duration   time.Duration
}

// Summarize builds a Summary from the session's terminal state.
func Summarize(s *Session, deckTitle string, duration time.Duration) Summary {
	sum := Summary{
		Mode:       s.Mode(),
		DeckTitle:  deckTitle,
		CardsTotal: s.Len(),
		Duration:   duration,
	}
	if sr, ok := s.Speed(); ok {
		sum.Score = sr.Score
		sum.BestStreak = sr.BestStreak
	}
	if _, mastered, ok := s.Smart(); ok {
		sum.Mastered = mastered
	}
	return sum
}
