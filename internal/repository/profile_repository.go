package repository

import (
	"context"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

type ProfileRepository interface {
	// Get returns domain.ErrProfileNotFound when the user has no profile.
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	// Put overwrites the whole profile.
	Put(ctx context.Context, profile *domain.Profile) error
}
