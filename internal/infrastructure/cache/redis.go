package cache

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"pitchmatch/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL  = 10 * time.Minute
	scanBatch   = 100
	dialTimeout = 2 * time.Second
)

var errUnavailable = errors.New("redis unavailable")

// Redis caches match boards as JSON. When the server cannot be reached at
// startup every call becomes a silent miss, so the database stays the source
// of truth.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	degraded atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{
		logger: cmp.Or(logger, zap.NewNop()),
		ttl:    cmp.Or(max(cfg.TTL, 0), defaultTTL),
	}

	addr := net.JoinHostPort(
		cmp.Or(strings.TrimSpace(cfg.Host), "localhost"),
		cmp.Or(strings.TrimSpace(cfg.Port), "6379"),
	)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.logger.Warn("redis unreachable, match boards will not be cached", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) enabled() bool {
	return r != nil && r.client != nil
}

// noteFailure logs the first runtime error only; later ones are returned
// to the caller without extra noise.
func (r *Redis) noteFailure(err error) error {
	if r.degraded.CompareAndSwap(false, true) {
		r.logger.Warn("redis call failed, serving from database", zap.Error(err))
	}
	return err
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.enabled() {
		return errUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.enabled() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes the value at key into out and reports whether it was
// present.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.enabled() {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, r.noteFailure(err)
	case len(raw) == 0:
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl uses the configured
// REDIS_TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return r.noteFailure(err)
	}
	return nil
}

// DeleteByPattern unlinks every key matching pattern, scanning in batches.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if !r.enabled() || pattern == "" {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return r.noteFailure(err)
		}
		if len(keys) > 0 {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				return r.noteFailure(err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
