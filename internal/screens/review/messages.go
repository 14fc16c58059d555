package review

import "time"

// timerTickMsg is sent every second during a Speed Run round. Seq ties the
// tick to the round that armed it, so ticks from an abandoned timer are
// dropped after a restart or mode change.
type timerTickMsg struct {
	Seq int
	At  time.Time
}

// resultSavedMsg confirms the session result was persisted.
type resultSavedMsg struct {
	Err error
}
