package refreshtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notesapp/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps each token under "<prefix>:<token>". Keys expire
// after ttl, which should match the refresh token lifetime; the token's own
// exp claim stays authoritative.
type RedisRepository struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisRepository(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisRepository) key(token string) string {
	return r.prefix + ":" + token
}

func (r *RedisRepository) Create(ctx context.Context, token string) error {
	ok, err := r.rdb.SetNX(ctx, r.key(token), 1, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: refresh token already stored", common.ErrorInvariant)
	}
	return nil
}

func (r *RedisRepository) Exists(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return n == 1, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	n, err := r.rdb.Del(ctx, r.key(token)).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: refresh token not found", common.ErrorNotFound)
	}
	return nil
}
