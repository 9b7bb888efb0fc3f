package memory

import (
	"context"

	"github.com/studybuds/studybuds-backend/internal/repository"
)

type skipRepository struct {
	store *Store
}

func NewSkipRepository(store *Store) repository.SkipRepository {
	return &skipRepository{store: store}
}

func (r *skipRepository) Add(_ context.Context, userID, skippedID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	set, ok := r.store.skips[userID]
	if !ok {
		set = make(map[string]struct{})
		r.store.skips[userID] = set
	}
	set[skippedID] = struct{}{}
	return nil
}

func (r *skipRepository) Members(_ context.Context, userID string) (map[string]struct{}, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]struct{}, len(r.store.skips[userID]))
	for id := range r.store.skips[userID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *skipRepository) Clear(_ context.Context, userID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n := len(r.store.skips[userID])
	delete(r.store.skips, userID)
	return n, nil
}
