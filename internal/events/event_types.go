package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventReferralCredited EventType = "referral_credited"
	EventVoteCast         EventType = "vote_cast"
	EventVoteSwitched     EventType = "vote_switched"
	EventWindowUpdated    EventType = "window_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email     string  `json:"email"`
	MyCode    string  `json:"my_code"`
	InvitedBy *string `json:"invited_by,omitempty"`
}

// ReferralCreditedPayload payload.
type ReferralCreditedPayload struct {
	InviterCode string `json:"inviter_code"`
}

// VoteCastPayload payload.
type VoteCastPayload struct {
	MovieID         string  `json:"movie_id"`
	MovieTitle      string  `json:"movie_title"`
	PreviousMovieID *string `json:"previous_movie_id,omitempty"`
}

// WindowUpdatedPayload payload.
type WindowUpdatedPayload struct {
	EndTime time.Time `json:"end_time"`
}
