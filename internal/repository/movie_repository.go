package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-vote/internal/domain"
)

const movieColumns = `id, title, poster, trailer, description, vote_count, created_at, updated_at`

// MovieRepository encapsulates candidate persistence. Movies are seeded by
// migration and never created through request traffic.
type MovieRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
}

type movieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository instantiates repository.
func NewMovieRepository(pool *pgxpool.Pool) MovieRepository {
	return &movieRepository{pool: pool}
}

func (r *movieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	const query = `SELECT ` + movieColumns + ` FROM movies WHERE id=$1`

	var movie domain.Movie
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Poster,
		&movie.Trailer,
		&movie.Description,
		&movie.VoteCount,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	const query = `SELECT ` + movieColumns + ` FROM movies ORDER BY vote_count DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Movie
	for rows.Next() {
		var movie domain.Movie
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Poster,
			&movie.Trailer,
			&movie.Description,
			&movie.VoteCount,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, movie)
	}
	return result, rows.Err()
}
