package memory

import (
	"context"
	"time"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type messageRecord struct {
	message domain.Message
}

type messageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) repository.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(_ context.Context, message *domain.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ts := r.store.now()
	if last, ok := r.store.lastTS[message.MatchID]; ok && !ts.After(last) {
		ts = last.Add(time.Microsecond)
	}
	r.store.lastTS[message.MatchID] = ts
	message.Timestamp = ts

	cp := *message
	r.store.messages[message.MatchID] = append(r.store.messages[message.MatchID], &messageRecord{message: cp})
	return nil
}

func (r *messageRepository) ListByMatch(_ context.Context, matchID string) ([]*domain.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Appends happen in timestamp order, so the slice is already sorted.
	recs := r.store.messages[matchID]
	messages := make([]*domain.Message, 0, len(recs))
	for _, rec := range recs {
		cp := rec.message
		messages = append(messages, &cp)
	}
	return messages, nil
}
