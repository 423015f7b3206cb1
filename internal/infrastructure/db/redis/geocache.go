package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geoprumo/route-service/internal/core/domain"
)

const (
	geocodeKeyPrefix  = "geocode:"
	defaultGeocodeTTL = 24 * time.Hour
)

// GeocodeCache stores geocode search results as JSON.
// Key format: geocode:<lowercased, trimmed query>
type GeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGeocodeCache wraps client. A non-positive ttl uses 24h.
func NewGeocodeCache(client *redis.Client, ttl time.Duration) *GeocodeCache {
	if ttl <= 0 {
		ttl = defaultGeocodeTTL
	}
	return &GeocodeCache{client: client, ttl: ttl}
}

// Get returns the cached place for query, or nil on a miss.
func (c *GeocodeCache) Get(ctx context.Context, query string) (*domain.Place, error) {
	raw, err := c.client.Get(ctx, c.key(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("geocode cache get: %w", err)
	}

	var p domain.Place
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("geocode cache decode: %w", err)
	}
	return &p, nil
}

// Set stores place for query until the TTL expires.
func (c *GeocodeCache) Set(ctx context.Context, query string, place *domain.Place) error {
	raw, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("geocode cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("geocode cache set: %w", err)
	}
	return nil
}

func (c *GeocodeCache) key(query string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}
