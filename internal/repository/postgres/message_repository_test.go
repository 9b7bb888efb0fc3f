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

func TestMessageRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)
	stamped := time.Date(2024, 3, 1, 8, 0, 0, 1000, time.UTC)

	mock.ExpectQuery("INSERT INTO messages (.+) GREATEST").
		WithArgs("x1", "m1", "a", "Ann", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(stamped))

	msg := &domain.Message{ID: "x1", MatchID: "m1", SenderID: "a", SenderName: "Ann", Content: "hello"}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.True(t, msg.Timestamp.Equal(stamped))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_ListByMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("ORDER BY created_at ASC, seq ASC").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "sender_id", "sender_name", "content", "created_at"}).
			AddRow("x1", "m1", "a", "Ann", "hi", t0).
			AddRow("x2", "m1", "b", "Ben", "hey", t0.Add(time.Second)))

	msgs, err := repo.ListByMatch(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hey", msgs[1].Content)
	assert.True(t, msgs[1].Timestamp.Equal(t0.Add(time.Second)))
}
