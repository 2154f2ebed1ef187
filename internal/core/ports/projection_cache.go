package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by ProjectionCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache keys for the read-side projections.
const (
	// CacheKeyShipmentList caches the manager shipment list projection.
	CacheKeyShipmentList = "projections:shipments:all"

	// CacheKeyLowStock caches the low stock product projection.
	CacheKeyLowStock = "projections:products:low-stock"
)

// ProjectionCache is a byte-level cache in front of the read-side queries.
// Writers invalidate affected keys after each committed command; queries
// treat any cache failure as a miss and fall through to storage.
type ProjectionCache interface {
	// Get returns the cached payload for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key for at most ttl.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops the given keys. Missing keys are not an error.
	Invalidate(ctx context.Context, keys ...string) error
}
