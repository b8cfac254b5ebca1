package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/cache"
	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/events"
	"github.com/spec-kit/movie-vote/internal/repository"
)

// VoteOutcome is the result of a successful vote mutation.
type VoteOutcome struct {
	Message    string
	MovieTitle string
	Switched   bool
}

// VoteService fronts the vote ledger: it gates mutations on the voting
// window and publishes vote events. The consistency guarantees live in the
// ledger transaction.
type VoteService struct {
	votes      repository.VoteRepository
	movies     repository.MovieRepository
	window     *WindowService
	readCache  *cache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewVoteService builds the service.
func NewVoteService(votes repository.VoteRepository, movies repository.MovieRepository, window *WindowService, readCache *cache.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *VoteService {
	return &VoteService{
		votes:      votes,
		movies:     movies,
		window:     window,
		readCache:  readCache,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// CastVote records or switches the user's vote.
func (s *VoteService) CastVote(ctx context.Context, userID, movieID string) (*VoteOutcome, error) {
	_, open, err := s.window.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.ErrVotingClosed
	}

	result, err := s.votes.CastVote(ctx, userID, movieID, s.now())
	if err != nil {
		return nil, err
	}

	eventType := events.EventVoteCast
	message := fmt.Sprintf("Vote recorded: %s", result.MovieTitle)
	if result.Switched {
		eventType = events.EventVoteSwitched
		message = fmt.Sprintf("Vote changed to: %s", result.MovieTitle)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      eventType,
			UserID:    userID,
			Timestamp: s.now(),
			Payload: events.VoteCastPayload{
				MovieID:         movieID,
				MovieTitle:      result.MovieTitle,
				PreviousMovieID: result.PreviousMovieID,
			},
		})
	}

	s.logger.Info("vote committed",
		zap.String("user_id", userID),
		zap.String("movie_id", movieID),
		zap.Bool("switched", result.Switched))

	return &VoteOutcome{
		Message:    message,
		MovieTitle: result.MovieTitle,
		Switched:   result.Switched,
	}, nil
}

// ListMovies returns all candidates sorted by tally, cached briefly.
func (s *VoteService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	var cached []domain.Movie
	if s.readCache.Get(ctx, cache.KeyMovieList, &cached) {
		return cached, nil
	}

	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}
	s.readCache.Set(ctx, cache.KeyMovieList, movies)
	return movies, nil
}
