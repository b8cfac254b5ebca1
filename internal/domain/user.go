package domain

import "time"

// User is the domain model for voters. Identity comes from the external
// identity provider; the email is the stable lookup key.
type User struct {
	ID            string
	Name          string
	Email         string
	Photo         string
	GoogleID      string
	MyCode        string
	InvitedBy     *string
	ReferralCount int
	VotedMovieID  *string
	VoteTimestamp *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasVoted reports whether the user currently holds an active vote.
func (u *User) HasVoted() bool {
	return u.VotedMovieID != nil && *u.VotedMovieID != ""
}
