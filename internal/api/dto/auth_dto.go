package dto

import (
	"time"

	"github.com/spec-kit/movie-vote/internal/domain"
)

// LoginRequest carries the provider credential and optional invite code.
type LoginRequest struct {
	Credential string `json:"credential"`
	InviteCode string `json:"inviteCode"`
}

// UserResponse is the user shape returned by login and /me.
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Photo         string     `json:"photo,omitempty"`
	MyCode        string     `json:"myCode"`
	InvitedBy     *string    `json:"invitedBy"`
	ReferralCount int        `json:"referralCount"`
	VotedMovieID  *string    `json:"votedMovieId"`
	VoteTimestamp *time.Time `json:"voteTimestamp,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Photo:         user.Photo,
		MyCode:        user.MyCode,
		InvitedBy:     user.InvitedBy,
		ReferralCount: user.ReferralCount,
		VotedMovieID:  user.VotedMovieID,
		VoteTimestamp: user.VoteTimestamp,
	}
}

// LeaderboardEntry is the public recruiter shape, stripped of private fields.
type LeaderboardEntry struct {
	Name          string `json:"name"`
	Photo         string `json:"photo,omitempty"`
	ReferralCount int    `json:"referralCount"`
	MyCode        string `json:"myCode"`
}

// NewLeaderboard maps domain users to public leaderboard entries.
func NewLeaderboard(users []domain.User) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, LeaderboardEntry{
			Name:          user.Name,
			Photo:         user.Photo,
			ReferralCount: user.ReferralCount,
			MyCode:        user.MyCode,
		})
	}
	return entries
}
