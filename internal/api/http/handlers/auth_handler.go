package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-vote/internal/api/dto"
	"github.com/spec-kit/movie-vote/internal/auth"
	"github.com/spec-kit/movie-vote/internal/identity"
	"github.com/spec-kit/movie-vote/internal/service"
)

// AuthHandler exposes login, logout and the current-user endpoint.
type AuthHandler struct {
	authService *service.AuthService
	secureEnv   bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, appEnv string) *AuthHandler {
	return &AuthHandler{authService: authService, secureEnv: appEnv == "production"}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Credential == "" {
		return fiber.NewError(http.StatusBadRequest, "identity credential missing")
	}

	user, token, exp, err := h.authService.Login(c.Context(), req.Credential, req.InviteCode)
	if err != nil {
		if errors.Is(err, identity.ErrVerificationFailed) {
			return fiber.NewError(http.StatusUnauthorized, "authentication failed")
		}
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
	})
}

// Logout handles POST /auth/logout. Sessions are stateless, so logout only
// instructs the client to discard the credential.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out",
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "access denied, log in to continue")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secureEnv,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureEnv,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
