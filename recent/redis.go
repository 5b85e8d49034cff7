// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recent

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

// Redis keeps one sorted set per user, scored by view time.
type Redis struct {
	rdb   *goredis.Client
	clock clockwork.Clock
}

func NewRedis(rdb *goredis.Client, clock clockwork.Clock) *Redis {
	return &Redis{rdb: rdb, clock: clock}
}

// Connect parses a URL such as "redis://localhost:6379/0" and verifies the
// connection.
func Connect(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (r *Redis) Touch(ctx context.Context, userID, representativeID string) error {
	key := recentKey(userID)
	score := float64(r.clock.Now().UnixMilli())

	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZAdd(ctx, key, goredis.Z{Score: score, Member: representativeID})
		pipe.ZRemRangeByRank(ctx, key, 0, -(MaxRecent + 1))
		pipe.Expire(ctx, key, recentTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record recent view: %w", err)
	}
	return nil
}

func (r *Redis) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.rdb.ZRevRange(ctx, recentKey(userID), 0, MaxRecent-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent views: %w", err)
	}
	return ids, nil
}

func recentKey(userID string) string {
	return "recent:" + userID
}
