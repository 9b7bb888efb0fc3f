package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/metrics"
	"github.com/studybuds/studybuds-backend/internal/repository"
	"github.com/studybuds/studybuds-backend/internal/usecase/compatibility"
)

// DefaultMinScore is the threshold applied when the caller gives none.
const DefaultMinScore = 60

// Candidate is one ranked partner suggestion.
type Candidate struct {
	UserID             string          `json:"user_id"`
	Profile            *domain.Profile `json:"profile"`
	CompatibilityScore int             `json:"compatibility_score"`
}

type PartnerFinder struct {
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	logger      *zap.Logger
}

func NewPartnerFinder(
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	logger *zap.Logger,
) *PartnerFinder {
	return &PartnerFinder{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		logger:      logger,
	}
}

// FindCompatiblePartners ranks every other complete profile against the
// caller. Candidates already in a pending or accepted match with the caller
// are left out. The result is sorted by score descending, then user id.
//
// If profiles or active matches cannot be read, the result is empty and the
// error is domain.ErrMatchingUnavailable; a partial list is never returned.
func (f *PartnerFinder) FindCompatiblePartners(ctx context.Context, userID string, minScore int) ([]Candidate, error) {
	empty := []Candidate{}

	self, err := f.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			metrics.PartnerScansTotal.WithLabelValues("not_found").Inc()
			return empty, err
		}
		return empty, f.unavailable(userID, "load caller profile", err)
	}
	selfComplete, err := self.Complete()
	if err != nil {
		metrics.PartnerScansTotal.WithLabelValues("incomplete").Inc()
		return empty, err
	}

	profiles, err := f.profileRepo.List(ctx)
	if err != nil {
		return empty, f.unavailable(userID, "list profiles", err)
	}

	active, err := f.matchRepo.ListActiveForUser(ctx, userID)
	if err != nil {
		return empty, f.unavailable(userID, "list active matches", err)
	}
	bound := make(map[string]struct{}, len(active))
	for _, m := range active {
		if other, ok := m.GetOtherUserID(userID); ok {
			bound[other] = struct{}{}
		}
	}

	candidates := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		if p.UserID == userID {
			continue
		}
		if _, ok := bound[p.UserID]; ok {
			continue
		}
		complete, err := p.Complete()
		if err != nil {
			continue
		}
		score := compatibility.Score(selfComplete, complete)
		if score < minScore {
			continue
		}
		candidates = append(candidates, Candidate{
			UserID:             p.UserID,
			Profile:            p,
			CompatibilityScore: score,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CompatibilityScore != candidates[j].CompatibilityScore {
			return candidates[i].CompatibilityScore > candidates[j].CompatibilityScore
		}
		return candidates[i].UserID < candidates[j].UserID
	})

	metrics.PartnerScansTotal.WithLabelValues("ok").Inc()
	metrics.PartnerCandidates.Observe(float64(len(candidates)))
	return candidates, nil
}

// Explain returns the score breakdown between the caller and another user.
func (f *PartnerFinder) Explain(ctx context.Context, userID, otherID string) (*compatibility.Breakdown, error) {
	self, err := f.completeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := f.completeProfile(ctx, otherID)
	if err != nil {
		return nil, err
	}
	bd := compatibility.Explain(self, other)
	return &bd, nil
}

func (f *PartnerFinder) completeProfile(ctx context.Context, userID string) (*domain.CompleteProfile, error) {
	p, err := f.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p.Complete()
}

func (f *PartnerFinder) unavailable(userID, step string, cause error) error {
	metrics.PartnerScansTotal.WithLabelValues("unavailable").Inc()
	f.logger.Warn("partner search failed",
		zap.String("user_id", userID),
		zap.String("step", step),
		zap.Error(cause),
	)
	return domain.ErrMatchingUnavailable
}
