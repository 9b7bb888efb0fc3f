// Package calendar manages study-calendar events and sharing them by email.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type CalendarUseCase struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

func NewCalendarUseCase(eventRepo repository.EventRepository, logger *zap.Logger) *CalendarUseCase {
	return &CalendarUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// CreateEventRequest represents a new calendar event
type CreateEventRequest struct {
	Title          string           `json:"title" binding:"required,max=200"`
	Start          time.Time        `json:"start" binding:"required"`
	End            time.Time        `json:"end" binding:"required"`
	CourseMaterial string           `json:"course_material" binding:"max=500"`
	EventType      domain.EventType `json:"event_type" binding:"omitempty,oneof=study exam assignment other"`
	SharedWith     []string         `json:"shared_with" binding:"omitempty,dive,email"`
}

// ShareRequest names the email an event is shared with or unshared from.
type ShareRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (uc *CalendarUseCase) Create(ctx context.Context, owner domain.Identity, req *CreateEventRequest) (*domain.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: end must be after start", domain.ErrInvalidInput)
	}

	eventType := req.EventType
	switch eventType {
	case "":
		eventType = domain.EventTypeOther
	case domain.EventTypeStudy, domain.EventTypeExam, domain.EventTypeAssignment, domain.EventTypeOther:
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, eventType)
	}

	shared := make([]string, 0, len(req.SharedWith))
	seen := make(map[string]struct{}, len(req.SharedWith))
	for _, email := range req.SharedWith {
		email = normalizeEmail(email)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		shared = append(shared, email)
	}

	event := &domain.CalendarEvent{
		ID:             uuid.NewString(),
		OwnerID:        owner.UserID,
		Title:          title,
		Start:          req.Start.UTC(),
		End:            req.End.UTC(),
		CourseMaterial: strings.TrimSpace(req.CourseMaterial),
		EventType:      eventType,
		SharedWith:     shared,
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	uc.logger.Info("event created", zap.String("event_id", event.ID), zap.String("owner_id", owner.UserID))
	return event, nil
}

// List returns the caller's own events and those shared with their email.
func (uc *CalendarUseCase) List(ctx context.Context, caller domain.Identity) ([]*domain.CalendarEvent, error) {
	events, err := uc.eventRepo.ListVisible(ctx, caller.UserID, normalizeEmail(caller.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (uc *CalendarUseCase) Delete(ctx context.Context, caller domain.Identity, eventID string) error {
	if _, err := uc.owned(ctx, caller, eventID); err != nil {
		return err
	}
	if err := uc.eventRepo.Delete(ctx, eventID); err != nil {
		return uc.wrap("delete", err)
	}
	uc.logger.Info("event deleted", zap.String("event_id", eventID))
	return nil
}

func (uc *CalendarUseCase) Share(ctx context.Context, caller domain.Identity, eventID, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if _, err := uc.owned(ctx, caller, eventID); err != nil {
		return err
	}
	if err := uc.eventRepo.Share(ctx, eventID, email); err != nil {
		return uc.wrap("share", err)
	}
	return nil
}

func (uc *CalendarUseCase) Unshare(ctx context.Context, caller domain.Identity, eventID, email string) error {
	email = normalizeEmail(email)
	if _, err := uc.owned(ctx, caller, eventID); err != nil {
		return err
	}
	if err := uc.eventRepo.Unshare(ctx, eventID, email); err != nil {
		return uc.wrap("unshare", err)
	}
	return nil
}

func (uc *CalendarUseCase) owned(ctx context.Context, caller domain.Identity, eventID string) (*domain.CalendarEvent, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, uc.wrap("get", err)
	}
	if event.OwnerID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (uc *CalendarUseCase) wrap(op string, err error) error {
	if errors.Is(err, domain.ErrEventNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s event: %w", op, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
