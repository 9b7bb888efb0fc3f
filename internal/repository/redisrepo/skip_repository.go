package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

type skipRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSkipRepository stores left swipes as one Redis set per user. The set
// expires ttl after the latest swipe so skipped candidates resurface.
func NewSkipRepository(client *redis.Client, ttl time.Duration) repository.SkipRepository {
	return &skipRepository{client: client, ttl: ttl}
}

func skipKey(userID string) string {
	return fmt.Sprintf("feed:skipped:%s", userID)
}

func (r *skipRepository) Add(ctx context.Context, userID, skippedID string) error {
	key := skipKey(userID)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, skippedID)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record skip: %w", err)
	}
	return nil
}

func (r *skipRepository) Members(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids, err := r.client.SMembers(ctx, skipKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load skips: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *skipRepository) Clear(ctx context.Context, userID string) (int, error) {
	key := skipKey(userID)
	pipe := r.client.TxPipeline()
	card := pipe.SCard(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear skips: %w", err)
	}
	return int(card.Val()), nil
}
