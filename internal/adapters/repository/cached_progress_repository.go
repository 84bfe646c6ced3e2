package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

const DefaultProgressTTL = 30 * time.Minute

var _ domain.ProgressCache = (*CachedProgressRepository)(nil)

type CachedProgressRepository struct {
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedProgressRepository(cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedProgressRepository {
	if ttl <= 0 {
		ttl = DefaultProgressTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProgressRepository{
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("progress_cache"),
	}
}

func (r *CachedProgressRepository) cacheKey(profileID string) string {
	return fmt.Sprintf("progress:%s", profileID)
}

func (r *CachedProgressRepository) Get(ctx context.Context, profileID string) (*domain.Progress, error) {
	key := r.cacheKey(profileID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("progress cache: read: %w", err)
	}

	var progress domain.Progress
	if err := json.Unmarshal(val, &progress); err != nil {
		r.logger.Warn("corrupted entry, cleaning up key", zap.String("profile_id", profileID), zap.Error(err))
		r.cache.Del(ctx, key)
		return nil, domain.ErrCacheMiss
	}
	return &progress, nil
}

func (r *CachedProgressRepository) Set(ctx context.Context, profileID string, progress *domain.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("progress cache: encode: %w", err)
	}
	if err := r.cache.Set(ctx, r.cacheKey(profileID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("progress cache: write: %w", err)
	}
	return nil
}

func (r *CachedProgressRepository) Invalidate(ctx context.Context, profileID string) error {
	if err := r.cache.Del(ctx, r.cacheKey(profileID)).Err(); err != nil {
		return fmt.Errorf("progress cache: invalidate: %w", err)
	}
	return nil
}
