package swipe

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/metrics"
	"github.com/studybuds/studybuds-backend/internal/repository"
	"github.com/studybuds/studybuds-backend/internal/usecase/feed"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

type SwipeUseCase struct {
	skipRepo  repository.SkipRepository
	requester feed.MatchRequester
	logger    *zap.Logger
}

func NewSwipeUseCase(
	skipRepo repository.SkipRepository,
	requester feed.MatchRequester,
	logger *zap.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		skipRepo:  skipRepo,
		requester: requester,
		logger:    logger,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	UserID    string    `json:"user_id" binding:"required"`
	Direction Direction `json:"direction" binding:"required,oneof=left right"`
}

// SwipeResponse carries the match request opened by a right swipe.
type SwipeResponse struct {
	Direction Direction     `json:"direction"`
	Match     *domain.Match `json:"match,omitempty"`
}

// Swipe records a decision on a feed card. Left hides the candidate until
// the skip set expires or is reset; right opens a match request.
func (uc *SwipeUseCase) Swipe(ctx context.Context, swiperID string, req *SwipeRequest) (*SwipeResponse, error) {
	if swiperID == req.UserID {
		return nil, domain.ErrCannotMatchSelf
	}

	switch req.Direction {
	case DirectionLeft:
		if err := uc.skipRepo.Add(ctx, swiperID, req.UserID); err != nil {
			return nil, fmt.Errorf("failed to record swipe: %w", err)
		}
		metrics.SwipesTotal.WithLabelValues(string(DirectionLeft)).Inc()
		return &SwipeResponse{Direction: DirectionLeft}, nil

	case DirectionRight:
		match, err := uc.requester.CreateRequest(ctx, swiperID, req.UserID)
		if err != nil {
			return nil, err
		}
		metrics.SwipesTotal.WithLabelValues(string(DirectionRight)).Inc()
		return &SwipeResponse{Direction: DirectionRight, Match: match}, nil

	default:
		return nil, fmt.Errorf("%w: unknown swipe direction %q", domain.ErrInvalidInput, req.Direction)
	}
}
