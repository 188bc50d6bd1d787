package cache

import (
	"context"
	"sync"

	"folio/internal/domain/models"
)

// MemoryCache is the in-process VersionCache. The cache is local to one
// process; no cross-process coherence is attempted.
type MemoryCache struct {
	lister VersionLister

	mu          sync.Mutex
	entries     map[string][]models.DocumentVersion
	generations map[string]uint64
}

var _ VersionCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty in-process cache over the given store
func NewMemoryCache(lister VersionLister) *MemoryCache {
	return &MemoryCache{
		lister:      lister,
		entries:     make(map[string][]models.DocumentVersion),
		generations: make(map[string]uint64),
	}
}

// GetVersions returns the cached list or reads through to the store.
// The store fetch happens outside the lock; the result is only stored if no
// invalidation arrived while the fetch was in flight.
func (c *MemoryCache) GetVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	c.mu.Lock()
	if cached, ok := c.entries[documentID]; ok {
		out := make([]models.DocumentVersion, len(cached))
		copy(out, cached)
		c.mu.Unlock()
		return out, nil
	}
	observed := c.generations[documentID]
	c.mu.Unlock()

	versions, err := c.lister.ListVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generations[documentID] == observed {
		stored := make([]models.DocumentVersion, len(versions))
		copy(stored, versions)
		c.entries[documentID] = stored
	}
	c.mu.Unlock()

	return versions, nil
}

// InvalidateVersions drops the entry and bumps the generation so an
// in-flight read cannot repopulate the cache with pre-invalidation data
func (c *MemoryCache) InvalidateVersions(ctx context.Context, documentID string) error {
	c.mu.Lock()
	delete(c.entries, documentID)
	c.generations[documentID]++
	c.mu.Unlock()
	return nil
}
