package memory

import (
	"context"
	"sort"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type eventRecord struct {
	event domain.CalendarEvent
}

type eventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) repository.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Create(_ context.Context, event *domain.CalendarEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event.CreatedAt = r.store.now()
	if event.SharedWith == nil {
		event.SharedWith = []string{}
	}
	r.store.events[event.ID] = &eventRecord{event: *copyEvent(event)}
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id string) (*domain.CalendarEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return copyEvent(&rec.event), nil
}

func (r *eventRepository) ListVisible(_ context.Context, ownerID, email string) ([]*domain.CalendarEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := []*domain.CalendarEvent{}
	for _, rec := range r.store.events {
		e := &rec.event
		if e.OwnerID == ownerID || (email != "" && e.IsSharedWith(email)) {
			events = append(events, copyEvent(e))
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (r *eventRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.store.events, id)
	return nil
}

func (r *eventRepository) Share(_ context.Context, id, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	if !rec.event.IsSharedWith(email) {
		rec.event.SharedWith = append(rec.event.SharedWith, email)
	}
	return nil
}

func (r *eventRepository) Unshare(_ context.Context, id, email string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	kept := rec.event.SharedWith[:0]
	for _, s := range rec.event.SharedWith {
		if s != email {
			kept = append(kept, s)
		}
	}
	rec.event.SharedWith = kept
	return nil
}

func copyEvent(e *domain.CalendarEvent) *domain.CalendarEvent {
	cp := *e
	cp.SharedWith = append([]string{}, e.SharedWith...)
	return &cp
}
