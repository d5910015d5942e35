package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cravemap/backend/internal/domain/providers"
)

// MemoryAdapter implements CacheProvider in process memory. Used when Redis
// is unavailable so the application still gets TTL'd caching.
//
// Each Set schedules a one-shot eviction timer. The timer captures the
// entry's write generation and deletes only if the generation still
// matches, so a timer from an earlier write can never evict an entry that
// was re-set in the meantime. Reads also check the deadline, since a timer
// may lag its scheduled fire time.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	gen     uint64
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	gen       uint64
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		entries: make(map[string]memoryEntry),
	}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, fmt.Errorf("key not found: %s", key)
	}

	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := time.Duration(expirationSeconds) * time.Second

	data := make([]byte, len(value))
	copy(data, value)

	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.entries[key] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
		gen:       gen,
	}
	a.mu.Unlock()

	time.AfterFunc(ttl, func() {
		a.mu.Lock()
		if entry, ok := a.entries[key]; ok && entry.gen == gen {
			delete(a.entries, key)
		}
		a.mu.Unlock()
	})

	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()
	return ok && time.Now().Before(entry.expiresAt), nil
}
