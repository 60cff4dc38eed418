package repositories

import (
	"context"
	"sync"
	"time"
)

// RateLimitRepository provides an atomic way to check and increment
// windowed counters (per-phone and global SMS caps).
type RateLimitRepository interface {
	// IncrementAndCheck atomically increments the counter for key and
	// reports whether the request is allowed (count <= limit).
	IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// CleanupExpired removes all counter keys whose window has passed.
	CleanupExpired(ctx context.Context) error
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

type memoryRateLimitRepository struct {
	mu       sync.Mutex
	counters map[string]rateLimitEntry
}

func NewMemoryRateLimitRepository() RateLimitRepository {
	return &memoryRateLimitRepository{counters: make(map[string]rateLimitEntry)}
}

func (r *memoryRateLimitRepository) IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	entry, ok := r.counters[key]
	if !ok || now.After(entry.expiresAt) {
		entry = rateLimitEntry{count: 0, expiresAt: now.Add(window)}
	}
	entry.count++
	r.counters[key] = entry
	return entry.count <= limit, nil
}

func (r *memoryRateLimitRepository) CleanupExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, entry := range r.counters {
		if now.After(entry.expiresAt) {
			delete(r.counters, key)
		}
	}
	return nil
}
