package qr

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisUsageStore marks token consumption with SET NX so concurrent
// clock requests racing on the same token resolve to exactly one winner.
// Keys expire with the token itself.
type RedisUsageStore struct {
	client *redis.Client
}

func NewRedisUsageStore(client *redis.Client) *RedisUsageStore {
	return &RedisUsageStore{client: client}
}

func (s *RedisUsageStore) MarkUsed(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, usageKey(tokenID), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx token usage: %w", err)
	}
	return !ok, nil
}

func usageKey(tokenID string) string {
	return "qr:used:" + tokenID
}
