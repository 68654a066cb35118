// Package cache holds the Redis-backed item snapshot cache and decision locks.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shareit-rental/service-booking/internal/config"
	"github.com/shareit-rental/service-booking/internal/domain/item"
)

// releaseScript deletes the lock only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client  redis.UniversalClient
	itemTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, itemTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		itemTTL,
	)
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, itemTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, itemTTL: itemTTL}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetItem returns a cached snapshot, or nil on a miss.
func (c *RedisCache) GetItem(ctx context.Context, itemID int64) (*item.Snapshot, error) {
	data, err := c.client.Get(ctx, itemKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap item.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *RedisCache) SetItem(ctx context.Context, snap item.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(snap.ID), payload, c.itemTTL).Err()
}

func (c *RedisCache) InvalidateItem(ctx context.Context, itemID int64) error {
	return c.client.Del(ctx, itemKey(itemID)).Err()
}

// AcquireDecisionLock takes the per-booking lock. It returns the token to release
// it with, or "" when another decision holds the lock.
func (c *RedisCache) AcquireDecisionLock(ctx context.Context, bookingID int64, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, decisionLockKey(bookingID), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (c *RedisCache) ReleaseDecisionLock(ctx context.Context, bookingID int64, token string) error {
	return releaseScript.Run(ctx, c.client, []string{decisionLockKey(bookingID)}, token).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("cache:item:%d", itemID)
}

func decisionLockKey(bookingID int64) string {
	return fmt.Sprintf("lock:booking:%d", bookingID)
}
