package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

const (
	catalogKey = "catalog:all"
	catalogTTL = 30 * time.Second
)

// CatalogCache caches the full sweet listing in Redis under a single key.
// Mutating inventory operations call Invalidate so readers never see a stale
// list for longer than catalogTTL.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

func (c *CatalogCache) Get(ctx context.Context) ([]*domain.Sweet, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []*domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		// treat a corrupt entry as a miss
		return nil, false, nil
	}
	return sweets, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, sweets []*domain.Sweet) error {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
