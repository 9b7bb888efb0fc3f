package repository

import (
	"context"
	"time"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

type MatchRepository interface {
	// Create stores a pending match. Returns domain.ErrActiveMatchExists if
	// the pair already has a pending or accepted match.
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Match, error)
	ListActiveForUser(ctx context.Context, userID string) ([]*domain.Match, error)
	// Transition moves a match from `from` to `to` and stamps `at` on the
	// matching terminal timestamp. Returns domain.ErrInvalidTransition if the
	// stored status is no longer `from`.
	Transition(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) error
	// DeleteWithMessages removes a match still in status `from` together with
	// all of its messages in a single atomic write.
	DeleteWithMessages(ctx context.Context, id string, from domain.MatchStatus) error
}
