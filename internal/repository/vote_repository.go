package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-vote/internal/domain"
)

// CastVoteResult reports the outcome of a committed vote mutation.
type CastVoteResult struct {
	MovieTitle      string
	Switched        bool
	PreviousMovieID *string
}

// VoteRepository is the vote ledger. CastVote moves a user between the
// NoVote and VotedFor states while keeping every movie's vote_count equal to
// its voters set.
type VoteRepository interface {
	CastVote(ctx context.Context, userID, movieID string, now time.Time) (*CastVoteResult, error)
}

type voteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository instantiates the ledger.
func NewVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &voteRepository{pool: pool}
}

// CastVote runs the whole mutation in one transaction. The row lock on the
// user serializes concurrent votes per user; decrement-old, set-user and
// increment-new commit or roll back as a unit.
func (r *voteRepository) CastVote(ctx context.Context, userID, movieID string, now time.Time) (*CastVoteResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var previous *string
	if err := tx.QueryRow(ctx,
		`SELECT voted_movie_id FROM users WHERE id=$1 FOR UPDATE`, userID,
	).Scan(&previous); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if previous != nil && *previous == movieID {
		return nil, domain.ErrDuplicateVote
	}

	var title string
	if err := tx.QueryRow(ctx,
		`SELECT title FROM movies WHERE id=$1`, movieID,
	).Scan(&title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}

	if previous != nil {
		// Floor at zero: a negative tally would only mask a prior
		// inconsistency, never fix one.
		if _, err := tx.Exec(ctx,
			`UPDATE movies SET vote_count = GREATEST(vote_count - 1, 0), updated_at = NOW() WHERE id=$1`,
			*previous,
		); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM movie_voters WHERE movie_id=$1 AND user_id=$2`,
			*previous, userID,
		); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET voted_movie_id=$1, vote_timestamp=$2, updated_at=NOW() WHERE id=$3`,
		movieID, now, userID,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE movies SET vote_count = vote_count + 1, updated_at = NOW() WHERE id=$1`,
		movieID,
	); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO movie_voters (movie_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		movieID, userID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CastVoteResult{
		MovieTitle:      title,
		Switched:        previous != nil,
		PreviousMovieID: previous,
	}, nil
}
