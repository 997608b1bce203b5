package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client   *redis.Client
	statsTTL time.Duration
}

const statsCacheKey = "leads:stats:dashboard"

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, statsTTL: cfg.StatsTTL()}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetStats returns the cached dashboard stats payload, if any.
func (r *Redis) GetStats(ctx context.Context) ([]byte, bool) {
	if r == nil || r.Client == nil || r.statsTTL <= 0 {
		return nil, false
	}
	raw, err := r.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// SetStats caches a dashboard stats payload for the configured TTL.
func (r *Redis) SetStats(ctx context.Context, payload []byte) {
	if r == nil || r.Client == nil || r.statsTTL <= 0 {
		return
	}
	_ = r.Client.Set(ctx, statsCacheKey, payload, r.statsTTL).Err()
}

// InvalidateStats drops the cached stats after a lead mutation.
func (r *Redis) InvalidateStats(ctx context.Context) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, statsCacheKey).Err()
}
