// Package cache keeps recent listing searches in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"staybook/pkg/metrics"
	"staybook/pkg/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "staybook:listings:"

type Cache interface {
	Get(ctx context.Context, filters model.SearchFilters) ([]model.Listing, bool, error)
	Set(ctx context.Context, filters model.SearchFilters, listings []model.Listing) error
}

type RedisCache struct {
	rdb     redis.UniversalClient
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewRedisCache(rdb redis.UniversalClient, ttl time.Duration, m *metrics.Metrics) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, metrics: m}
}

// Key normalizes filters so equivalent searches share an entry. Location
// matching is case-insensitive, so the key is too.
func Key(filters model.SearchFilters) string {
	normalized := model.SearchFilters{
		Location:     strings.ToLower(strings.TrimSpace(filters.Location)),
		PropertyType: strings.TrimSpace(filters.PropertyType),
		Bedrooms:     strings.TrimSpace(filters.Bedrooms),
	}
	return keyPrefix + normalized.Query().Encode()
}

func (c *RedisCache) Get(ctx context.Context, filters model.SearchFilters) ([]model.Listing, bool, error) {
	data, err := c.rdb.Get(ctx, Key(filters)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache(metrics.CacheMiss)
		return nil, false, nil
	}
	if err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		return nil, false, fmt.Errorf("listings cache get: %w", err)
	}

	var listings []model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		return nil, false, fmt.Errorf("listings cache decode: %w", err)
	}
	c.metrics.ObserveCache(metrics.CacheHit)
	return listings, true, nil
}

func (c *RedisCache) Set(ctx context.Context, filters model.SearchFilters, listings []model.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("listings cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(filters), data, c.ttl).Err(); err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		return fmt.Errorf("listings cache set: %w", err)
	}
	c.metrics.ObserveCache(metrics.CacheSet)
	return nil
}
