package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/movie-vote/internal/api/http"
	"github.com/spec-kit/movie-vote/internal/api/http/handlers"
	"github.com/spec-kit/movie-vote/internal/auth"
	"github.com/spec-kit/movie-vote/internal/cache"
	"github.com/spec-kit/movie-vote/internal/config"
	"github.com/spec-kit/movie-vote/internal/events"
	"github.com/spec-kit/movie-vote/internal/identity"
	"github.com/spec-kit/movie-vote/internal/observability"
	"github.com/spec-kit/movie-vote/internal/persistence"
	"github.com/spec-kit/movie-vote/internal/repository"
	"github.com/spec-kit/movie-vote/internal/service"
	"github.com/spec-kit/movie-vote/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	movieRepo := repository.NewMovieRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	configRepo := repository.NewConfigRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	readCache := cache.New(redis.Client, cfg.Redis.CacheTTL, logger)

	referralService := service.NewReferralService(userRepo, readCache, dispatcher, logger)
	verifier := identity.NewGoogleVerifier(cfg.Google.ClientID)
	authService := service.NewAuthService(cfg.Auth, userRepo, referralService, verifier, logger)
	windowService := service.NewWindowService(configRepo, cfg.Voting.DefaultEndTime, dispatcher, logger)
	voteService := service.NewVoteService(voteRepo, movieRepo, windowService, readCache, dispatcher, logger)
	cacheService := service.NewCacheMaintenanceService(dispatcher, readCache, logger)

	worker.StartCacheWorker(cacheService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.App.Env),
		Movies:         handlers.NewMoviesHandler(voteService),
		Referrals:      handlers.NewReferralHandler(referralService),
		Config:         handlers.NewConfigHandler(windowService, cfg.Auth.AdminPasswordHash),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
