package repository

import "context"

// SkipRepository remembers which candidates a user swiped left on.
type SkipRepository interface {
	Add(ctx context.Context, userID, skippedID string) error
	Members(ctx context.Context, userID string) (map[string]struct{}, error)
	Clear(ctx context.Context, userID string) (int, error)
}
