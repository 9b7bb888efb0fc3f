package memory

import (
	"context"
	"sort"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type profileRecord struct {
	profile domain.Profile
}

type profileRepository struct {
	store *Store
}

func NewProfileRepository(store *Store) repository.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) Get(_ context.Context, userID string) (*domain.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return copyProfile(&rec.profile), nil
}

func (r *profileRepository) List(_ context.Context) ([]*domain.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(r.store.profiles))
	for _, rec := range r.store.profiles {
		profiles = append(profiles, copyProfile(&rec.profile))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].UserID < profiles[j].UserID })
	return profiles, nil
}

func (r *profileRepository) Put(_ context.Context, profile *domain.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profile.SubmittedAt = r.store.now()
	r.store.profiles[profile.UserID] = &profileRecord{profile: *copyProfile(profile)}
	return nil
}

func copyProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.StudyTechniques = append([]string(nil), p.StudyTechniques...)
	return &cp
}
