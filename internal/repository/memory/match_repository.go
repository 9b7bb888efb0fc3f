package memory

import (
	"context"
	"sort"
	"time"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type matchRecord struct {
	match domain.Match
}

type matchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) repository.MatchRepository {
	return &matchRepository{store: store}
}

func (r *matchRepository) Create(_ context.Context, match *domain.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	match.User1ID, match.User2ID = domain.OrderedPair(match.User1ID, match.User2ID)
	for _, rec := range r.store.matches {
		m := &rec.match
		if m.User1ID == match.User1ID && m.User2ID == match.User2ID && m.Status.IsActive() {
			return domain.ErrActiveMatchExists
		}
	}

	match.CreatedAt = r.store.now()
	r.store.matches[match.ID] = &matchRecord{match: *copyMatch(match)}
	return nil
}

func (r *matchRepository) GetByID(_ context.Context, id string) (*domain.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(&rec.match), nil
}

func (r *matchRepository) ListForUser(_ context.Context, userID string) ([]*domain.Match, error) {
	return r.filter(func(m *domain.Match) bool { return m.HasUser(userID) }), nil
}

func (r *matchRepository) ListActiveForUser(_ context.Context, userID string) ([]*domain.Match, error) {
	return r.filter(func(m *domain.Match) bool { return m.HasUser(userID) && m.Status.IsActive() }), nil
}

func (r *matchRepository) filter(keep func(*domain.Match) bool) []*domain.Match {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := []*domain.Match{}
	for _, rec := range r.store.matches {
		if keep(&rec.match) {
			matches = append(matches, copyMatch(&rec.match))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

func (r *matchRepository) Transition(_ context.Context, id string, from, to domain.MatchStatus, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m := &rec.match
	if m.Status != from {
		return domain.ErrInvalidTransition
	}

	switch to {
	case domain.MatchStatusAccepted:
		if m.AcceptedAt != nil {
			return domain.ErrInvalidTransition
		}
		m.AcceptedAt = &at
	case domain.MatchStatusDeclined:
		if m.DeclinedAt != nil {
			return domain.ErrInvalidTransition
		}
		m.DeclinedAt = &at
	default:
		return domain.ErrInvalidTransition
	}
	m.Status = to
	return nil
}

func (r *matchRepository) DeleteWithMessages(_ context.Context, id string, from domain.MatchStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if rec.match.Status != from {
		return domain.ErrInvalidTransition
	}
	delete(r.store.messages, id)
	delete(r.store.lastTS, id)
	delete(r.store.matches, id)
	return nil
}

func copyMatch(m *domain.Match) *domain.Match {
	cp := *m
	cp.UserDetails = make(map[string]domain.UserDetails, len(m.UserDetails))
	for k, v := range m.UserDetails {
		cp.UserDetails[k] = v
	}
	if m.AcceptedAt != nil {
		t := *m.AcceptedAt
		cp.AcceptedAt = &t
	}
	if m.DeclinedAt != nil {
		t := *m.DeclinedAt
		cp.DeclinedAt = &t
	}
	return &cp
}
