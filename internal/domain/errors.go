package domain

import "errors"

// Sentinel errors for expected, locally recoverable business-rule failures.
// Store-connectivity failures are not part of this set; they surface as
// wrapped driver errors and map to a generic retryable response.
var (
	ErrUnauthenticated         = errors.New("missing credential")
	ErrInvalidSession          = errors.New("session expired or invalid")
	ErrUserNotFound            = errors.New("user not found")
	ErrMovieNotFound           = errors.New("movie not found")
	ErrVotingClosed            = errors.New("voting session closed")
	ErrDuplicateVote           = errors.New("already voted for this movie")
	ErrCodeAllocationExhausted = errors.New("invite code allocation exhausted")
)
