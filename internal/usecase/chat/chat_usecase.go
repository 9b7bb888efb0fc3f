// Package chat gates messaging on accepted matches and streams the ordered
// history to live subscribers.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/metrics"
	"github.com/studybuds/studybuds-backend/internal/infrastructure/pubsub"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type ChatUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	broker      pubsub.Broker
	logger      *zap.Logger
}

func NewChatUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	broker pubsub.Broker,
	logger *zap.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		broker:      broker,
		logger:      logger,
	}
}

// SendMessageRequest is the body of POST /matches/:id/messages.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send appends a message to an accepted match and notifies subscribers.
func (uc *ChatUseCase) Send(ctx context.Context, matchID, senderID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrContentEmpty
	}

	match, err := uc.participantMatch(ctx, matchID, senderID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchStatusAccepted {
		return nil, domain.ErrMatchNotAccepted
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		SenderID:   senderID,
		SenderName: match.UserDetails[senderID].Name,
		Content:    content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	metrics.MessagesSentTotal.Inc()

	if err := uc.broker.Publish(ctx, topic(matchID)); err != nil {
		// The message is stored; subscribers catch up on their next change.
		uc.logger.Warn("failed to publish chat change", zap.String("match_id", matchID), zap.Error(err))
	}
	return msg, nil
}

// ListOrdered returns the match history by ascending timestamp.
func (uc *ChatUseCase) ListOrdered(ctx context.Context, matchID, actorID string) ([]*domain.Message, error) {
	if _, err := uc.participantMatch(ctx, matchID, actorID); err != nil {
		return nil, err
	}
	return uc.list(ctx, matchID)
}

// Subscribe calls onUpdate with the full ordered history right away and
// again after every change, until ctx ends or the returned func is called.
// Calls to onUpdate are sequential.
func (uc *ChatUseCase) Subscribe(
	ctx context.Context,
	matchID, actorID string,
	onUpdate func([]*domain.Message),
) (func(), error) {
	if _, err := uc.participantMatch(ctx, matchID, actorID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	changes, unsubscribe, err := uc.broker.Subscribe(ctx, topic(matchID))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	metrics.ChatSubscribers.Inc()

	go func() {
		defer metrics.ChatSubscribers.Dec()
		uc.deliver(ctx, matchID, onUpdate)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				uc.deliver(ctx, matchID, onUpdate)
			}
		}
	}()

	return func() {
		unsubscribe()
		cancel()
	}, nil
}

func (uc *ChatUseCase) deliver(ctx context.Context, matchID string, onUpdate func([]*domain.Message)) {
	messages, err := uc.list(ctx, matchID)
	if err != nil {
		if ctx.Err() == nil {
			uc.logger.Warn("failed to refresh chat", zap.String("match_id", matchID), zap.Error(err))
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	onUpdate(messages)
}

func (uc *ChatUseCase) list(ctx context.Context, matchID string) ([]*domain.Message, error) {
	messages, err := uc.messageRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (uc *ChatUseCase) participantMatch(ctx context.Context, matchID, userID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotMatchParticipant
	}
	return match, nil
}

func topic(matchID string) string {
	return "chat:" + matchID
}
