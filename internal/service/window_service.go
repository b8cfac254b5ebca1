package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/events"
	"github.com/spec-kit/movie-vote/internal/repository"
)

// WindowService owns the voting deadline. Reads are pure; the deadline only
// moves through Set, which is an explicit, audited admin action.
type WindowService struct {
	configs        repository.ConfigRepository
	defaultEndTime time.Time
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	now            func() time.Time
}

// NewWindowService builds the service.
func NewWindowService(configs repository.ConfigRepository, defaultEndTime time.Time, dispatcher events.Dispatcher, logger *zap.Logger) *WindowService {
	return &WindowService{
		configs:        configs,
		defaultEndTime: defaultEndTime,
		dispatcher:     dispatcher,
		logger:         logger,
		now:            time.Now,
	}
}

// Get returns the window and whether voting is open right now. A missing
// row is bootstrapped once from the configured default; an existing value
// is never overwritten by a read.
func (s *WindowService) Get(ctx context.Context) (*domain.VotingWindow, bool, error) {
	window, err := s.configs.GetWindow(ctx)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, err
		}
		window, err = s.configs.EnsureWindow(ctx, s.defaultEndTime)
		if err != nil {
			return nil, false, err
		}
	}
	return window, window.OpenAt(s.now()), nil
}

// Set replaces the deadline and emits an audit event.
func (s *WindowService) Set(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error) {
	window, err := s.configs.SetWindow(ctx, endTime)
	if err != nil {
		return nil, err
	}

	s.logger.Info("voting window updated", zap.Time("end_time", window.EndTime))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventWindowUpdated,
			Timestamp: s.now(),
			Payload:   events.WindowUpdatedPayload{EndTime: window.EndTime},
		})
	}
	return window, nil
}
