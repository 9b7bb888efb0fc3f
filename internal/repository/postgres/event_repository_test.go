package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuds/studybuds-backend/internal/domain"
)

var eventRowColumns = []string{
	"id", "owner_id", "title", "starts_at", "ends_at", "course_material",
	"event_type", "shared_with", "created_at",
}

func TestEventRepository_ListVisible(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM calendar_events (.+) ANY\\(shared_with\\)").
		WithArgs("bob", "bob@example.com").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("e1", "alice", "Exam prep", start, start.Add(time.Hour), "Chapter 3", "exam", `{bob@example.com}`, start))

	events, err := repo.ListVisible(context.Background(), "bob", "bob@example.com")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeExam, events[0].EventType)
	assert.True(t, events[0].IsSharedWith("bob@example.com"))
}

func TestEventRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectExec("DELETE FROM calendar_events").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventRepository_Share(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectExec("array_append").
		WithArgs("e1", "bob@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("array_remove").
		WithArgs("e1", "bob@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, repo.Share(ctx, "e1", "bob@example.com"))
	require.NoError(t, repo.Unshare(ctx, "e1", "bob@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
