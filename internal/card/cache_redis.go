// Copyright (c) 2026 TCGScan. All rights reserved.

package card

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tcgscan/tcgscan/internal/platform/constants"
)

// priceCacheTTL bounds staleness of cached latest prices. Snapshots arrive
// roughly daily, so fifteen minutes is generous.
const priceCacheTTL = 15 * time.Minute

// RedisPriceCache implements [PriceCache] on top of go-redis.
//
// Every failure path degrades to a cache miss; the repository remains the
// source of truth.
type RedisPriceCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPriceCache creates a Redis-backed latest-price cache.
func NewPriceCache(client *redis.Client, logger *slog.Logger) *RedisPriceCache {
	return &RedisPriceCache{client: client, logger: logger}
}

func priceCacheKey(cardID int64) string {
	return constants.RedisPrefixCardPrices + strconv.FormatInt(cardID, 10)
}

// GetLatest returns cached latest prices and whether the entry existed.
func (cache *RedisPriceCache) GetLatest(context context.Context, cardID int64) ([]*PriceSnapshot, bool) {
	payload, err := cache.client.Get(context, priceCacheKey(cardID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("price_cache_get_failed",
				slog.Int64("card_id", cardID),
				slog.Any("error", err),
			)
		}
		return nil, false
	}

	var snapshots []*PriceSnapshot
	if err := json.Unmarshal(payload, &snapshots); err != nil {
		// Corrupt entry: drop it and fall through to the repository.
		cache.logger.Warn("price_cache_corrupt_entry", slog.Int64("card_id", cardID))
		_ = cache.client.Del(context, priceCacheKey(cardID)).Err()
		return nil, false
	}

	return snapshots, true
}

// SetLatest stores latest prices for a card with the cache TTL.
func (cache *RedisPriceCache) SetLatest(context context.Context, cardID int64, snapshots []*PriceSnapshot) {
	payload, err := json.Marshal(snapshots)
	if err != nil {
		return
	}

	if err := cache.client.Set(context, priceCacheKey(cardID), payload, priceCacheTTL).Err(); err != nil {
		cache.logger.Warn("price_cache_set_failed",
			slog.Int64("card_id", cardID),
			slog.Any("error", err),
		)
	}
}

// Invalidate drops the cached entry after a new snapshot is recorded.
func (cache *RedisPriceCache) Invalidate(context context.Context, cardID int64) {
	if err := cache.client.Del(context, priceCacheKey(cardID)).Err(); err != nil {
		cache.logger.Warn("price_cache_invalidate_failed",
			slog.Int64("card_id", cardID),
			slog.Any("error", err),
		)
	}
}
