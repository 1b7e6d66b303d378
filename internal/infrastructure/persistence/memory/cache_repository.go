// Package memory provides in-memory implementations of the persistence
// ports, used in development mode and by the test suites.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pantrychef/v1/internal/ports/outbound"
)

// ErrKeyNotFound is returned when a key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

type cacheItem struct {
	value     []byte
	counter   int64
	expiresAt time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// CacheRepository implements outbound.CacheRepository in process memory.
type CacheRepository struct {
	mu   sync.RWMutex
	data map[string]cacheItem
	now  func() time.Time
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() *CacheRepository {
	return &CacheRepository{
		data: make(map[string]cacheItem),
		now:  time.Now,
	}
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// WithClock fixes the time source, for deterministic expiry tests.
func (r *CacheRepository) WithClock(now func() time.Time) *CacheRepository {
	r.now = now
	return r
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.data[key]
	if !ok || item.expired(r.now()) {
		return nil, ErrKeyNotFound
	}
	return item.value, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	r.data[key] = cacheItem{value: value, expiresAt: r.now().Add(ttl)}
	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.data[key]
	return ok && !item.expired(r.now()), nil
}

// Increment atomically increments a counter. The TTL is only applied
// when the counter is created, matching the Redis pipeline semantics
// closely enough for rate limiting.
func (r *CacheRepository) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.data[key]
	if !ok || item.expired(r.now()) {
		item = cacheItem{expiresAt: r.now().Add(ttl)}
	}
	item.counter++
	r.data[key] = item
	return item.counter, nil
}
