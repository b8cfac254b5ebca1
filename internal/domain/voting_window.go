package domain

import "time"

// VotingWindowID keys the singleton configuration row.
const VotingWindowID = "timer"

// VotingWindow holds the voting deadline. Open/closed is always derived from
// the deadline, never stored.
type VotingWindow struct {
	EndTime   time.Time
	UpdatedAt time.Time
}

// OpenAt reports whether voting is open at the given instant. The exact
// deadline instant counts as closed.
func (w VotingWindow) OpenAt(now time.Time) bool {
	return now.Before(w.EndTime)
}
