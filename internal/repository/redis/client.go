package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Connect opens a client and pings it. A nil client means Redis is not
// configured or not reachable and the caller should run without a cache.
func Connect(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, move cache disabled")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return client
}

// MoveCache stores root search decisions in Redis.
type MoveCache struct {
	client *redis.Client
}

func NewMoveCache(client *redis.Client) *MoveCache {
	return &MoveCache{client: client}
}

func (c *MoveCache) Lookup(ctx context.Context, key string) (int, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	column, err := strconv.Atoi(value)
	if err != nil {
		// a corrupt entry is a miss; the next store overwrites it
		return 0, false, nil
	}
	return column, true, nil
}

func (c *MoveCache) Store(ctx context.Context, key string, column int, ttl time.Duration) error {
	return c.client.Set(ctx, key, strconv.Itoa(column), ttl).Err()
}
