package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"ridedemand/config"
	"ridedemand/logging"

	"github.com/bluele/gcache"
	"github.com/redis/go-redis/v9"
)

const redisPingAttempts = 3

// CacheService wraps the Redis client shared by API replicas.
// A CacheService with no client is valid and behaves as an empty cache.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(cfg config.RedisConfig, logger *slog.Logger) (*CacheService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < redisPingAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client}, nil
		}
		logger.Warn("redis ping failed",
			slog.Int("attempt", i+1),
			slog.Int("attempts", redisPingAttempts),
			slog.String("error", lastErr.Error()))
		time.Sleep(time.Second)
	}

	client.Close()
	return &CacheService{client: nil}, fmt.Errorf("redis ping failed after %d attempts: %w", redisPingAttempts, lastErr)
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

func (s *CacheService) GetInt(ctx context.Context, key string) (int, bool, error) {
	if !s.Available() {
		return 0, false, nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("cached value for %s: %w", key, err)
	}
	return n, true, nil
}

func (s *CacheService) SetInt(ctx context.Context, key string, value int, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	return s.client.Set(ctx, key, strconv.Itoa(value), ttl).Err()
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}

// PredictionCache keeps recent predictions in an in-process LRU, backed by
// Redis when one is configured. Redis errors are logged and treated as misses.
type PredictionCache struct {
	local  gcache.Cache
	remote *CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func NewPredictionCache(cfg config.CacheConfig, remote *CacheService, logger *slog.Logger) *PredictionCache {
	ttl := time.Duration(cfg.TTLSec) * time.Second
	c := &PredictionCache{remote: remote, ttl: ttl, logger: logger}
	if cfg.Size > 0 {
		b := gcache.New(cfg.Size).LRU()
		if ttl > 0 {
			b = b.Expiration(ttl)
		}
		c.local = b.Build()
	}
	return c
}

func (c *PredictionCache) Get(ctx context.Context, key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	if c.local != nil {
		if v, err := c.local.Get(key); err == nil {
			if n, ok := v.(int); ok {
				return n, true
			}
		}
	}

	n, ok, err := c.remote.GetInt(ctx, key)
	if err != nil {
		logging.LogError(logging.ContextLogger(ctx, c.logger), "prediction cache read failed", err, slog.String("key", key))
		return 0, false
	}
	if ok && c.local != nil {
		c.local.Set(key, n)
	}
	return n, ok
}

func (c *PredictionCache) Set(ctx context.Context, key string, trips int) {
	if c == nil {
		return
	}
	if c.local != nil {
		c.local.Set(key, trips)
	}
	if err := c.remote.SetInt(ctx, key, trips, c.ttl); err != nil {
		logging.LogError(logging.ContextLogger(ctx, c.logger), "prediction cache write failed", err, slog.String("key", key))
	}
}
