package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

const eventColumns = `id, owner_id, title, starts_at, ends_at, course_material,
	       event_type, shared_with, created_at`

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (
			id, owner_id, title, starts_at, ends_at, course_material, event_type, shared_with
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	shared := event.SharedWith
	if shared == nil {
		shared = []string{}
	}
	return r.db.QueryRowContext(
		ctx, query,
		event.ID, event.OwnerID, event.Title, event.Start, event.End,
		event.CourseMaterial, event.EventType, pq.Array(shared),
	).Scan(&event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1`
	event, err := scanEvent(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) ListVisible(ctx context.Context, ownerID, email string) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + ` FROM calendar_events
		WHERE owner_id = $1 OR ($2 <> '' AND $2 = ANY(shared_with))
		ORDER BY starts_at ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, ownerID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*domain.CalendarEvent{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
}

func (r *eventRepository) Share(ctx context.Context, id, email string) error {
	query := `
		UPDATE calendar_events
		SET shared_with = CASE
			WHEN $2 = ANY(shared_with) THEN shared_with
			ELSE array_append(shared_with, $2)
		END
		WHERE id = $1
	`
	return r.exec(ctx, query, id, email)
}

func (r *eventRepository) Unshare(ctx context.Context, id, email string) error {
	query := `UPDATE calendar_events SET shared_with = array_remove(shared_with, $2) WHERE id = $1`
	return r.exec(ctx, query, id, email)
}

func (r *eventRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Start, &e.End, &e.CourseMaterial,
		&e.EventType, pq.Array(&e.SharedWith), &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
