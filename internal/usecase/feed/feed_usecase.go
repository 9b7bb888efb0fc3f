package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/repository"
)

type FeedUseCase struct {
	finder    *PartnerFinder
	skipRepo  repository.SkipRepository
	requester MatchRequester
	logger    *zap.Logger
}

func NewFeedUseCase(
	finder *PartnerFinder,
	skipRepo repository.SkipRepository,
	requester MatchRequester,
	logger *zap.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		finder:    finder,
		skipRepo:  skipRepo,
		requester: requester,
		logger:    logger,
	}
}

// NextCardResponse is the top of the caller's feed.
type NextCardResponse struct {
	Candidate *Candidate `json:"candidate"`
	Remaining int        `json:"remaining"`
}

// ResetResponse reports how many skipped candidates were restored.
type ResetResponse struct {
	Restored int `json:"restored"`
}

// Next returns the best-ranked candidate the caller has not swiped left on.
// Candidate is nil when the feed is exhausted.
func (uc *FeedUseCase) Next(ctx context.Context, userID string, minScore int) (*NextCardResponse, error) {
	candidates, err := uc.finder.FindCompatiblePartners(ctx, userID, minScore)
	if err != nil {
		return nil, err
	}

	skipped, err := uc.skipRepo.Members(ctx, userID)
	if err != nil {
		// Fall back to an unfiltered feed.
		uc.logger.Warn("failed to load skipped candidates", zap.String("user_id", userID), zap.Error(err))
		skipped = map[string]struct{}{}
	}

	deck := NewDeck(userID, candidates, uc.requester)
	for c := deck.Current(); c != nil; c = deck.Current() {
		if _, ok := skipped[c.UserID]; !ok {
			break
		}
		deck.SwipeLeft()
	}

	resp := &NextCardResponse{Candidate: deck.Current()}
	if resp.Candidate != nil {
		resp.Remaining = deck.Remaining() - countSkippedAfter(deck, skipped)
	}
	return resp, nil
}

// ResetSkips brings every skipped candidate back into the feed.
func (uc *FeedUseCase) ResetSkips(ctx context.Context, userID string) (*ResetResponse, error) {
	n, err := uc.skipRepo.Clear(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset feed: %w", err)
	}
	uc.logger.Info("feed reset", zap.String("user_id", userID), zap.Int("restored", n))
	return &ResetResponse{Restored: n}, nil
}

func countSkippedAfter(deck *Deck, skipped map[string]struct{}) int {
	n := 0
	for _, c := range deck.candidates[deck.pos:] {
		if _, ok := skipped[c.UserID]; ok {
			n++
		}
	}
	return n
}
