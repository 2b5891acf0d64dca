package store

import (
	"sync"

	"github.com/amishk599/jobscrapper/internal/model"
)

var _ model.SearchCache = (*MemoryCache)(nil)

// MemoryCache keeps search results for the lifetime of the process. Entries
// are never expired or evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]model.Job
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]model.Job)}
}

// Get returns the stored result for keyword. Keywords are matched exactly.
func (c *MemoryCache) Get(keyword string) ([]model.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	jobs, ok := c.entries[keyword]
	return jobs, ok
}

// Put stores jobs under keyword, replacing any previous entry.
func (c *MemoryCache) Put(keyword string, jobs []model.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyword] = jobs
}

// Len returns the number of cached keywords.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
