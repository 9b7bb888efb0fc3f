package repository

import (
	"context"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

type MessageRepository interface {
	// Create assigns the message timestamp. Timestamps are strictly
	// increasing within a match.
	Create(ctx context.Context, message *domain.Message) error
	// ListByMatch returns messages in ascending timestamp order.
	ListByMatch(ctx context.Context, matchID string) ([]*domain.Message, error)
}
