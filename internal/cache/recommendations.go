// Package cache stores ranked recommendation lists in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRecommendationTTL bounds how stale a cached ranking may get as meals open and close.
const DefaultRecommendationTTL = 10 * time.Minute

type recommendationEntry struct {
	Day        string      `json:"day"`
	FoodIDs    []uuid.UUID `json:"foodIds"`
	ComputedAt time.Time   `json:"computedAt"`
}

// RecommendationCache keeps one ranked id list per user, tagged with the day it was computed for.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache creates a cache; ttl <= 0 selects DefaultRecommendationTTL.
func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = DefaultRecommendationTTL
	}
	return &RecommendationCache{client: client, ttl: ttl}
}

func recommendationKey(userID uuid.UUID) string {
	return "recommendations:" + userID.String()
}

// Get returns the cached ids for day. Entries computed for another day are misses.
func (c *RecommendationCache) Get(ctx context.Context, userID uuid.UUID, day string) ([]uuid.UUID, bool, error) {
	raw, err := c.client.Get(ctx, recommendationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached recommendations: %w", err)
	}

	var entry recommendationEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recommendations: %w", err)
	}
	if entry.Day != day {
		return nil, false, nil
	}
	return entry.FoodIDs, true, nil
}

// Set stores the ranked ids for day.
func (c *RecommendationCache) Set(ctx context.Context, userID uuid.UUID, day string, ids []uuid.UUID) error {
	raw, err := json.Marshal(recommendationEntry{Day: day, FoodIDs: ids, ComputedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	if err := c.client.Set(ctx, recommendationKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}
	return nil
}

// Invalidate drops the user's cached list.
func (c *RecommendationCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, recommendationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recommendations: %w", err)
	}
	return nil
}
