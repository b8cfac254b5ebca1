package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-vote/internal/api/dto"
	"github.com/spec-kit/movie-vote/internal/auth"
	"github.com/spec-kit/movie-vote/internal/service"
)

// ConfigHandler exposes the voting-window read and the guarded admin
// mutation. The read never writes.
type ConfigHandler struct {
	windowService     *service.WindowService
	adminPasswordHash string
}

// NewConfigHandler constructs handler.
func NewConfigHandler(windowService *service.WindowService, adminPasswordHash string) *ConfigHandler {
	return &ConfigHandler{windowService: windowService, adminPasswordHash: adminPasswordHash}
}

// Get handles GET /auth/config.
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	window, open, err := h.windowService.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"config":  dto.NewConfigResponse(window, open),
	})
}

// Set handles POST /admin/config.
func (h *ConfigHandler) Set(c *fiber.Ctx) error {
	var req dto.SetConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if h.adminPasswordHash == "" {
		return fiber.NewError(http.StatusUnauthorized, "admin access not configured")
	}
	if err := auth.ComparePassword(h.adminPasswordHash, req.Password); err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid admin credential")
	}

	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "endTime must be RFC3339")
	}

	window, err := h.windowService.Set(c.Context(), endTime)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"config":  dto.NewConfigResponse(window, window.OpenAt(time.Now())),
	})
}
