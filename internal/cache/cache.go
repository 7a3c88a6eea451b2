// Package cache holds a Redis-backed cache for public review listings.
// Storefront pages hammer the approved-reviews listing far harder than
// merchants moderate, so listings are cached briefly and dropped on any
// write for the shop.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/ShopReviews/internal/domain"
)

const keyPrefix = "reviews:listing"

// ListingCache caches review listings per (shop, product, status). A nil
// client disables the cache entirely; every lookup misses and every write is
// a no-op.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a listing cache. client may be nil to disable caching.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListingCache {
	return &ListingCache{client: client, ttl: ttl, logger: logger}
}

func listingKey(shop string, productID *int64, status domain.Status) string {
	product := "all"
	if productID != nil {
		product = strconv.FormatInt(*productID, 10)
	}
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, shop, product, status)
}

// Get returns the cached listing, or false on a miss. Redis failures count
// as misses; the caller falls through to the repository.
func (c *ListingCache) Get(ctx context.Context, shop string, productID *int64, status domain.Status) ([]domain.Review, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, listingKey(shop, productID, status)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "listing cache get failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, false
	}
	return reviews, true
}

// Set stores a listing with the configured TTL. Failures are logged only.
func (c *ListingCache) Set(ctx context.Context, shop string, productID *int64, status domain.Status, reviews []domain.Review) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(reviews)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, listingKey(shop, productID, status), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "listing cache set failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops every cached listing for the shop. Called after any
// ingestion or moderation write.
func (c *ListingCache) Invalidate(ctx context.Context, shop string) {
	if c.client == nil {
		return
	}

	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, shop)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.WarnContext(ctx, "listing cache scan failed", slog.String("error", err.Error()))
		return
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.WarnContext(ctx, "listing cache invalidate failed", slog.String("error", err.Error()))
		}
	}
}
