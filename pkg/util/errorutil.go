package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/movie-vote/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewNotFound(message string) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHENTICATED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("INVALID_SESSION", message, http.StatusForbidden)
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "store temporarily unavailable, retry shortly",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts any error to a DomainError. Business-rule sentinels
// from the domain package keep their taxonomy code and status; everything
// else is treated as an operational store failure.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return NewDomainError("UNAUTHENTICATED", err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrInvalidSession):
		return NewDomainError("INVALID_SESSION", err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrVotingClosed):
		return NewDomainError("VOTING_CLOSED", "Voting session has ended!", http.StatusBadRequest)
	case errors.Is(err, domain.ErrDuplicateVote):
		return NewDomainError("DUPLICATE_VOTE", "You already voted for this movie!", http.StatusBadRequest)
	case errors.Is(err, domain.ErrUserNotFound):
		return NewDomainError("USER_NOT_FOUND", "User not found.", http.StatusNotFound)
	case errors.Is(err, domain.ErrMovieNotFound):
		return NewDomainError("MOVIE_NOT_FOUND", "Selected movie not found.", http.StatusNotFound)
	case errors.Is(err, domain.ErrCodeAllocationExhausted):
		return NewDomainError("CODE_ALLOCATION_EXHAUSTED", "could not allocate invite code", http.StatusInternalServerError)
	case errors.Is(err, pgx.ErrNoRows):
		return NewDomainError("NOT_FOUND", "resource not found", http.StatusNotFound)
	}

	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "store temporarily unavailable, retry shortly",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
