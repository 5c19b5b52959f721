package domain

import (
	"errors"
	"net/http"
)

// Typed domain errors returned by the attendance services. Controllers map
// these to HTTP status codes with HTTPStatus instead of matching message text.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrSessionNotStarted = errors.New("session not started yet")
	ErrSessionEnded      = errors.New("session already ended")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrSessionNotStarted),
		errors.Is(err, ErrSessionEnded),
		errors.Is(err, ErrAlreadyCheckedIn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
