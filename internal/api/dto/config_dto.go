package dto

import "github.com/spec-kit/movie-vote/internal/domain"

// ConfigResponse exposes the voting window. EndTime is epoch milliseconds,
// the contract the countdown frontend expects.
type ConfigResponse struct {
	EndTime    int64 `json:"endTime"`
	VotingOpen bool  `json:"votingOpen"`
}

// NewConfigResponse maps the window and its derived open flag.
func NewConfigResponse(window *domain.VotingWindow, open bool) ConfigResponse {
	return ConfigResponse{
		EndTime:    window.EndTime.UnixMilli(),
		VotingOpen: open,
	}
}

// SetConfigRequest is the admin mutation payload.
type SetConfigRequest struct {
	Password string `json:"password"`
	EndTime  string `json:"endTime"`
}
