package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-vote/internal/api/dto"
	"github.com/spec-kit/movie-vote/internal/service"
)

// ReferralHandler exposes the public recruiter leaderboard.
type ReferralHandler struct {
	referralService *service.ReferralService
}

// NewReferralHandler constructs handler.
func NewReferralHandler(referralService *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// Leaderboard handles GET /auth/leaderboard.
func (h *ReferralHandler) Leaderboard(c *fiber.Ctx) error {
	top, err := h.referralService.Leaderboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": dto.NewLeaderboard(top),
	})
}
