package repository

import (
	"context"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	// ListVisible returns events owned by ownerID or shared with email, by start time.
	ListVisible(ctx context.Context, ownerID, email string) ([]*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id, email string) error
	Unshare(ctx context.Context, id, email string) error
}
