package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/cache"
	"github.com/spec-kit/movie-vote/internal/events"
)

// CacheMaintenanceService keeps the Redis read caches consistent with the
// store by invalidating them on the domain events that change their data.
type CacheMaintenanceService struct {
	dispatcher events.Dispatcher
	readCache  *cache.Cache
	logger     *zap.Logger
}

// NewCacheMaintenanceService creates the service.
func NewCacheMaintenanceService(dispatcher events.Dispatcher, readCache *cache.Cache, logger *zap.Logger) *CacheMaintenanceService {
	return &CacheMaintenanceService{
		dispatcher: dispatcher,
		readCache:  readCache,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *CacheMaintenanceService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventVoteCast, s.handleVoteChanged)
	s.dispatcher.Subscribe(events.EventVoteSwitched, s.handleVoteChanged)
	s.dispatcher.Subscribe(events.EventUserRegistered, s.handleLeaderboardChanged)
	s.dispatcher.Subscribe(events.EventReferralCredited, s.handleLeaderboardChanged)
	s.dispatcher.Subscribe(events.EventWindowUpdated, s.handleWindowUpdated)
}

func (s *CacheMaintenanceService) handleVoteChanged(ctx context.Context, event events.Event) error {
	s.readCache.Invalidate(ctx, cache.KeyMovieList)
	return nil
}

func (s *CacheMaintenanceService) handleLeaderboardChanged(ctx context.Context, event events.Event) error {
	s.readCache.Invalidate(ctx, cache.KeyLeaderboard)
	return nil
}

func (s *CacheMaintenanceService) handleWindowUpdated(ctx context.Context, event events.Event) error {
	// Audit trail for deadline changes.
	s.logger.Info("WindowUpdated", zap.Any("payload", event.Payload))
	return nil
}
