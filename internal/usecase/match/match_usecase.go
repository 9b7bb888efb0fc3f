// Package match implements the match-request ledger:
// pending -> accepted | declined | cancelled.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/metrics"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateMatchRequest is the body of POST /matches.
type CreateMatchRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

// CreateRequest opens a pending match from initiator to target. Both users
// must have a stored profile; their display details are snapshotted.
func (uc *MatchUseCase) CreateRequest(ctx context.Context, initiatorID, targetID string) (*domain.Match, error) {
	if initiatorID == targetID {
		return nil, domain.ErrCannotMatchSelf
	}

	initiator, err := uc.profileRepo.Get(ctx, initiatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load initiator profile: %w", err)
	}
	target, err := uc.profileRepo.Get(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	match := &domain.Match{
		ID:          uuid.NewString(),
		User1ID:     initiatorID,
		User2ID:     targetID,
		InitiatorID: initiatorID,
		Status:      domain.MatchStatusPending,
		UserDetails: map[string]domain.UserDetails{
			initiatorID: initiator.Details(),
			targetID:    target.Details(),
		},
	}

	if err := uc.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, domain.ErrActiveMatchExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	metrics.MatchTransitionsTotal.WithLabelValues(string(domain.MatchStatusPending)).Inc()
	uc.logger.Info("match requested",
		zap.String("match_id", match.ID),
		zap.String("initiator_id", initiatorID),
		zap.String("target_id", targetID),
	)
	return match, nil
}

// Accept moves a pending match to accepted. Only the recipient may accept.
func (uc *MatchUseCase) Accept(ctx context.Context, matchID, actorID string) (*domain.Match, error) {
	return uc.respond(ctx, matchID, actorID, domain.MatchStatusAccepted)
}

// Decline moves a pending match to declined. Only the recipient may decline.
func (uc *MatchUseCase) Decline(ctx context.Context, matchID, actorID string) (*domain.Match, error) {
	return uc.respond(ctx, matchID, actorID, domain.MatchStatusDeclined)
}

func (uc *MatchUseCase) respond(ctx context.Context, matchID, actorID string, to domain.MatchStatus) (*domain.Match, error) {
	match, err := uc.Get(ctx, matchID, actorID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchStatusPending || match.Recipient() != actorID {
		return nil, domain.ErrInvalidTransition
	}

	at := uc.now().UTC()
	if err := uc.matchRepo.Transition(ctx, matchID, domain.MatchStatusPending, to, at); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	match.Status = to
	switch to {
	case domain.MatchStatusAccepted:
		match.AcceptedAt = &at
	case domain.MatchStatusDeclined:
		match.DeclinedAt = &at
	}

	metrics.MatchTransitionsTotal.WithLabelValues(string(to)).Inc()
	uc.logger.Info("match updated",
		zap.String("match_id", matchID),
		zap.String("actor_id", actorID),
		zap.String("status", string(to)),
	)
	return match, nil
}

// Cancel withdraws a pending request. Only the initiator may cancel; the
// request and its messages are removed together.
func (uc *MatchUseCase) Cancel(ctx context.Context, matchID, actorID string) error {
	match, err := uc.Get(ctx, matchID, actorID)
	if err != nil {
		return err
	}
	if match.Status != domain.MatchStatusPending || match.InitiatorID != actorID {
		return domain.ErrInvalidTransition
	}

	if err := uc.matchRepo.DeleteWithMessages(ctx, matchID, domain.MatchStatusPending); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrMatchNotFound) {
			return err
		}
		return fmt.Errorf("failed to cancel match: %w", err)
	}

	metrics.MatchTransitionsTotal.WithLabelValues(string(domain.MatchStatusCancelled)).Inc()
	uc.logger.Info("match cancelled", zap.String("match_id", matchID), zap.String("actor_id", actorID))
	return nil
}

// Get returns a match visible to actorID.
func (uc *MatchUseCase) Get(ctx context.Context, matchID, actorID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !match.HasUser(actorID) {
		return nil, domain.ErrNotMatchParticipant
	}
	return match, nil
}

// ListForUser returns every match the user takes part in, newest first.
func (uc *MatchUseCase) ListForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// ListActiveForUser returns the user's pending and accepted matches.
func (uc *MatchUseCase) ListActiveForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active matches: %w", err)
	}
	return matches, nil
}
