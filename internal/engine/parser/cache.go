// # internal/engine/parser/cache.go
package parser

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

type cacheKey struct {
	path string
	hash uint64
}

// AnalysisCache memoizes metrics per (path, content hash). Entries are never
// evicted; Clear drops everything. Safe for concurrent use.
type AnalysisCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*StructuralMetrics
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{entries: make(map[cacheKey]*StructuralMetrics)}
}

func keyFor(filePath string, content []byte) cacheKey {
	return cacheKey{path: filePath, hash: xxhash.Sum64(content)}
}

// Get returns a copy of the cached metrics for this exact content.
func (c *AnalysisCache) Get(filePath string, content []byte) (*StructuralMetrics, bool) {
	c.mu.RLock()
	m, ok := c.entries[keyFor(filePath, content)]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

func (c *AnalysisCache) Put(filePath string, content []byte, m *StructuralMetrics) {
	c.mu.Lock()
	c.entries[keyFor(filePath, content)] = m.Clone()
	c.mu.Unlock()
}

func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *AnalysisCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]*StructuralMetrics)
	c.mu.Unlock()
}
