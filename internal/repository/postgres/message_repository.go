package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	// The timestamp is always later than the newest message of the match.
	query := `
		INSERT INTO messages (id, match_id, sender_id, sender_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5, GREATEST(
			clock_timestamp(),
			COALESCE(
				(SELECT MAX(created_at) FROM messages WHERE match_id = $2) + INTERVAL '1 microsecond',
				clock_timestamp()
			)
		))
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.ID, message.MatchID, message.SenderID, message.SenderName, message.Content,
	).Scan(&message.Timestamp)
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID string) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT id, match_id, sender_id, sender_name, content, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID)
	return messages, err
}
