package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-vote/internal/domain"
)

const userColumns = `id, name, email, photo, google_id, my_code, invited_by,
               referral_count, voted_movie_id, vote_timestamp, created_at, updated_at`

// UserRepository defines persistence access for voters.
type UserRepository interface {
	// CreateWithReferral inserts the user and credits the inviter (when the
	// code resolves) inside a single transaction, so a crash can never credit
	// a referral without the referred user existing or vice versa.
	CreateWithReferral(ctx context.Context, user *domain.User, inviterCode *string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateWithReferral(ctx context.Context, user *domain.User, inviterCode *string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	user.InvitedBy = nil
	if inviterCode != nil {
		cmd, err := tx.Exec(ctx,
			`UPDATE users SET referral_count = referral_count + 1, updated_at = NOW() WHERE my_code = $1`,
			*inviterCode,
		)
		if err != nil {
			return err
		}
		// Zero rows means the code stopped resolving between lookup and
		// credit; the new user is then recorded without a referral edge.
		if cmd.RowsAffected() > 0 {
			user.InvitedBy = inviterCode
		}
	}

	const query = `
        INSERT INTO users (name, email, photo, google_id, my_code, invited_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Photo,
		user.GoogleID,
		user.MyCode,
		user.InvitedBy,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE my_code=$1)`, code,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 5
	}
	// Ties on referral_count break deterministically by earliest signup.
	const query = `SELECT ` + userColumns + `
        FROM users
        WHERE referral_count > 0
        ORDER BY referral_count DESC, created_at ASC, id ASC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Photo,
		&user.GoogleID,
		&user.MyCode,
		&user.InvitedBy,
		&user.ReferralCount,
		&user.VotedMovieID,
		&user.VoteTimestamp,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Photo,
			&user.GoogleID,
			&user.MyCode,
			&user.InvitedBy,
			&user.ReferralCount,
			&user.VotedMovieID,
			&user.VoteTimestamp,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
