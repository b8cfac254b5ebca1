package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-vote/internal/api/dto"
	"github.com/spec-kit/movie-vote/internal/auth"
	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/service"
)

// MoviesHandler exposes the voting grid and the vote mutation.
type MoviesHandler struct {
	voteService *service.VoteService
}

// NewMoviesHandler constructs handler.
func NewMoviesHandler(voteService *service.VoteService) *MoviesHandler {
	return &MoviesHandler{voteService: voteService}
}

// List handles GET /auth/movies.
func (h *MoviesHandler) List(c *fiber.Ctx) error {
	movies, err := h.voteService.ListMovies(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"movies":  dto.NewMovieList(movies),
	})
}

// Vote handles POST /auth/movies/vote.
func (h *MoviesHandler) Vote(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "access denied, log in to continue")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MovieID == "" {
		return fiber.NewError(http.StatusBadRequest, "movieId required")
	}

	outcome, err := h.voteService.CastVote(c.Context(), user.ID, req.MovieID)
	if err != nil {
		// The ledger can lose the user between session load and commit.
		if errors.Is(err, domain.ErrUserNotFound) {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    outcome.Message,
		"movieTitle": outcome.MovieTitle,
	})
}
