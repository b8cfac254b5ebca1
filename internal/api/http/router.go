package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-vote/internal/api/http/handlers"
	"github.com/spec-kit/movie-vote/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Movies         *handlers.MoviesHandler
	Referrals      *handlers.ReferralHandler
	Config         *handlers.ConfigHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/movies", cfg.Movies.List)
	authGroup.Get("/leaderboard", cfg.Referrals.Leaderboard)
	authGroup.Get("/config", cfg.Config.Get)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/movies/vote", cfg.Movies.Vote)

	admin := app.Group("/admin")
	admin.Post("/config", cfg.Config.Set)
}
