// Package rediscache caches lessons with their materials in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lumen-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lumen:lesson-materials:"

// redisClient is the subset of *redis.Client used by the cache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache stores serialized domain.LessonWithMaterials values under the lesson id.
type Cache struct {
	client redisClient
	ttl    time.Duration
	logger *slog.Logger
}

// Open connects to redisURL and verifies the connection with PING.
func Open(ctx context.Context, redisURL string, ttl time.Duration, log *slog.Logger) (*Cache, *redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, ttl, log), client, nil
}

// New wraps an existing client.
func New(client redisClient, ttl time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.With(slog.String("component", "materials_cache")),
	}
}

func key(lessonID uuid.UUID) string {
	return keyPrefix + lessonID.String()
}

// Get returns the cached value. A miss reports found=false with a nil error.
func (c *Cache) Get(ctx context.Context, lessonID uuid.UUID) (*domain.LessonWithMaterials, bool, error) {
	raw, err := c.client.Get(ctx, key(lessonID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var value domain.LessonWithMaterials
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false, fmt.Errorf("decode cached materials: %w", err)
	}
	return &value, true, nil
}

// Set stores value with the configured TTL.
func (c *Cache) Set(ctx context.Context, value *domain.LessonWithMaterials) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode materials: %w", err)
	}
	if err := c.client.Set(ctx, key(value.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate removes the cached value for lessonID.
func (c *Cache) Invalidate(ctx context.Context, lessonID uuid.UUID) error {
	if err := c.client.Del(ctx, key(lessonID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Nop is a cache that never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, uuid.UUID) (*domain.LessonWithMaterials, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (Nop) Set(context.Context, *domain.LessonWithMaterials) error { return nil }

// Invalidate does nothing.
func (Nop) Invalidate(context.Context, uuid.UUID) error { return nil }
