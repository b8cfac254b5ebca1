package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-vote/internal/domain"
)

// ConfigRepository manages the singleton voting-window row. Reads never
// write; the deadline only changes through Ensure (first boot) or Set
// (explicit admin action).
type ConfigRepository interface {
	GetWindow(ctx context.Context) (*domain.VotingWindow, error)
	EnsureWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error)
	SetWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error)
}

type configRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository instantiates repository.
func NewConfigRepository(pool *pgxpool.Pool) ConfigRepository {
	return &configRepository{pool: pool}
}

func (r *configRepository) GetWindow(ctx context.Context) (*domain.VotingWindow, error) {
	const query = `SELECT end_time, updated_at FROM config WHERE id=$1`

	var window domain.VotingWindow
	if err := r.pool.QueryRow(ctx, query, domain.VotingWindowID).Scan(
		&window.EndTime,
		&window.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &window, nil
}

// EnsureWindow creates the row with the given deadline only when absent; an
// admin-set value is never clobbered.
func (r *configRepository) EnsureWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error) {
	const query = `
        INSERT INTO config (id, end_time) VALUES ($1, $2)
        ON CONFLICT (id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, domain.VotingWindowID, endTime); err != nil {
		return nil, err
	}
	return r.GetWindow(ctx)
}

func (r *configRepository) SetWindow(ctx context.Context, endTime time.Time) (*domain.VotingWindow, error) {
	const query = `
        INSERT INTO config (id, end_time, updated_at) VALUES ($1, $2, NOW())
        ON CONFLICT (id) DO UPDATE SET end_time = EXCLUDED.end_time, updated_at = NOW()
        RETURNING end_time, updated_at`

	var window domain.VotingWindow
	if err := r.pool.QueryRow(ctx, query, domain.VotingWindowID, endTime).Scan(
		&window.EndTime,
		&window.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &window, nil
}
