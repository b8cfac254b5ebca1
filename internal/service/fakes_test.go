package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-vote/internal/cache"
	"github.com/spec-kit/movie-vote/internal/domain"
	"github.com/spec-kit/movie-vote/internal/repository"
)

func nopCache() *cache.Cache {
	return cache.New(nil, 0, zap.NewNop())
}

// fakeUserRepo is an in-memory UserRepository preserving the same
// transactional semantics as the Postgres implementation.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   []*domain.User
	nextID  int
	crowded bool // when set, every generated code "exists"
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) CreateWithReferral(ctx context.Context, user *domain.User, inviterCode *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.InvitedBy = nil
	if inviterCode != nil {
		for _, existing := range r.users {
			if existing.MyCode == *inviterCode {
				existing.ReferralCount++
				user.InvitedBy = inviterCode
				break
			}
		}
	}

	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.crowded {
		return true, nil
	}
	for _, user := range r.users {
		if user.MyCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ranked []domain.User
	for _, user := range r.users {
		if user.ReferralCount > 0 {
			ranked = append(ranked, *user)
		}
	}
	// referral_count DESC, created_at ASC, matching the SQL ORDER BY.
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			a, b := ranked[i], ranked[j]
			if b.ReferralCount > a.ReferralCount ||
				(b.ReferralCount == a.ReferralCount && b.CreatedAt.Before(a.CreatedAt)) {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// fakeConfigRepo stores the singleton window row in memory and counts writes.
type fakeConfigRepo struct {
	mu          sync.Mutex
	window      *domain.VotingWindow
	ensureCalls int
	setCalls    int
}

func (r *fakeConfigRepo) GetWindow(ctx context.Context) (*domain.VotingWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.window == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *r.window
	return &copied, nil
}

func (r *fakeConfigRepo) EnsureWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureCalls++
	if r.window == nil {
		r.window = &domain.VotingWindow{EndTime: endTime, UpdatedAt: time.Now()}
	}
	copied := *r.window
	return &copied, nil
}

func (r *fakeConfigRepo) SetWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setCalls++
	r.window = &domain.VotingWindow{EndTime: endTime, UpdatedAt: time.Now()}
	copied := *r.window
	return &copied, nil
}

// memoryLedger implements VoteRepository with the same invariants as the
// transactional Postgres ledger: serialized per call, counts in lockstep
// with the voters sets.
type memoryLedger struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	movies map[string]*domain.Movie
	voters map[string]map[string]bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		users:  make(map[string]*domain.User),
		movies: make(map[string]*domain.Movie),
		voters: make(map[string]map[string]bool),
	}
}

func (l *memoryLedger) addUser(id string) {
	l.users[id] = &domain.User{ID: id}
}

func (l *memoryLedger) addMovie(id, title string) {
	l.movies[id] = &domain.Movie{ID: id, Title: title}
	l.voters[id] = make(map[string]bool)
}

func (l *memoryLedger) CastVote(ctx context.Context, userID, movieID string, now time.Time) (*repository.CastVoteResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.VotedMovieID != nil && *user.VotedMovieID == movieID {
		return nil, domain.ErrDuplicateVote
	}
	movie, ok := l.movies[movieID]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}

	var previous *string
	if user.VotedMovieID != nil {
		prev := *user.VotedMovieID
		previous = &prev
		if old := l.movies[prev]; old.VoteCount > 0 {
			old.VoteCount--
		}
		delete(l.voters[prev], userID)
	}

	target := movieID
	user.VotedMovieID = &target
	user.VoteTimestamp = &now
	movie.VoteCount++
	l.voters[movieID][userID] = true

	return &repository.CastVoteResult{
		MovieTitle:      movie.Title,
		Switched:        previous != nil,
		PreviousMovieID: previous,
	}, nil
}

// checkInvariant asserts vote_count == |voters| == users pointing at the
// movie, for every movie.
func (l *memoryLedger) checkInvariant() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, movie := range l.movies {
		pointing := 0
		for _, user := range l.users {
			if user.VotedMovieID != nil && *user.VotedMovieID == id {
				pointing++
			}
		}
		if movie.VoteCount != len(l.voters[id]) || movie.VoteCount != pointing {
			return fmt.Errorf("movie %s: vote_count=%d voters=%d pointing=%d",
				id, movie.VoteCount, len(l.voters[id]), pointing)
		}
	}
	return nil
}

type fakeMovieRepo struct {
	ledger *memoryLedger
}

func (r *fakeMovieRepo) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	movie, ok := r.ledger.movies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *movie
	return &copied, nil
}

func (r *fakeMovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	var result []domain.Movie
	for _, movie := range r.ledger.movies {
		result = append(result, *movie)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].VoteCount > result[i].VoteCount {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}
