package domain

import "time"

// Movie is a votable candidate. Descriptive fields are seeded out-of-band;
// only VoteCount changes during normal traffic, and only through the vote
// ledger.
type Movie struct {
	ID          string
	Title       string
	Poster      string
	Trailer     string
	Description string
	VoteCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
