package dto

import "github.com/spec-kit/movie-vote/internal/domain"

// MovieResponse is the candidate shape for the voting grid.
type MovieResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Poster      string `json:"poster"`
	Trailer     string `json:"trailer"`
	Description string `json:"desc"`
	VoteCount   int    `json:"voteCount"`
}

// NewMovieList maps domain movies.
func NewMovieList(movies []domain.Movie) []MovieResponse {
	result := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		result = append(result, MovieResponse{
			ID:          movie.ID,
			Title:       movie.Title,
			Poster:      movie.Poster,
			Trailer:     movie.Trailer,
			Description: movie.Description,
			VoteCount:   movie.VoteCount,
		})
	}
	return result
}

// VoteRequest carries the target candidate.
type VoteRequest struct {
	MovieID string `json:"movieId"`
}
