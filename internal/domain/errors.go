package domain

import (
	"errors"
	"strings"
)

var (
	// Profile errors
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileIncomplete = errors.New("profile incomplete")

	// Matching errors
	ErrMatchingUnavailable = errors.New("matching unavailable")
	ErrMatchNotFound       = errors.New("match not found")
	ErrActiveMatchExists   = errors.New("active match already exists for this pair")
	ErrCannotMatchSelf     = errors.New("cannot create a match request with yourself")
	ErrInvalidTransition   = errors.New("invalid match transition")
	ErrNotMatchParticipant = errors.New("user is not a participant of this match")

	// Chat errors
	ErrContentEmpty     = errors.New("message content is empty")
	ErrMatchNotAccepted = errors.New("match has not been accepted")

	// Calendar errors
	ErrEventNotFound = errors.New("event not found")

	// General errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
)

// ProfileIncompleteError reports which questionnaire fields are missing.
type ProfileIncompleteError struct {
	UserID        string
	MissingFields []string
}

func (e *ProfileIncompleteError) Error() string {
	return "profile incomplete: missing " + strings.Join(e.MissingFields, ", ")
}

func (e *ProfileIncompleteError) Is(target error) bool {
	return target == ErrProfileIncomplete
}
