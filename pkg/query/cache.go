package query

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lexgraph/lexgraph/pkg/types"
)

// cacheKey builds the response cache key from the strategy, the normalized
// query text, the serialized filters, and the result limit. Two requests
// agree on a key exactly when all four components agree.
func cacheKey(qt types.QueryType, normalized string, filters *types.QueryFilters, limit int) string {
	return fmt.Sprintf("%s|%s|%s|%d", qt, normalized, filters.Key(), limit)
}

// responseCache stores completed responses keyed by cacheKey. Implementations
// must be safe for concurrent use.
type responseCache interface {
	Get(key string) (*types.QueryResponse, bool)
	Put(key string, resp *types.QueryResponse)
	Len() int
	Each(fn func(resp *types.QueryResponse))
}

// mapResponseCache is the default unbounded cache.
type mapResponseCache struct {
	mu        sync.RWMutex
	responses map[string]*types.QueryResponse
}

func newMapResponseCache() *mapResponseCache {
	return &mapResponseCache{responses: make(map[string]*types.QueryResponse)}
}

func (c *mapResponseCache) Get(key string) (*types.QueryResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resp, ok := c.responses[key]
	return resp, ok
}

func (c *mapResponseCache) Put(key string, resp *types.QueryResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[key] = resp
}

func (c *mapResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.responses)
}

func (c *mapResponseCache) Each(fn func(resp *types.QueryResponse)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, resp := range c.responses {
		fn(resp)
	}
}

// lruResponseCache bounds the cache to a fixed number of entries with LRU
// eviction. Enabled via WithCacheSize.
type lruResponseCache struct {
	entries *lru.Cache[string, *types.QueryResponse]
}

func newLRUResponseCache(size int) (*lruResponseCache, error) {
	entries, err := lru.New[string, *types.QueryResponse](size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}
	return &lruResponseCache{entries: entries}, nil
}

func (c *lruResponseCache) Get(key string) (*types.QueryResponse, bool) {
	return c.entries.Get(key)
}

func (c *lruResponseCache) Put(key string, resp *types.QueryResponse) {
	c.entries.Add(key, resp)
}

func (c *lruResponseCache) Len() int {
	return c.entries.Len()
}

func (c *lruResponseCache) Each(fn func(resp *types.QueryResponse)) {
	for _, resp := range c.entries.Values() {
		fn(resp)
	}
}

// embeddingCache memoizes query embeddings keyed by normalized query text, so
// repeat semantic queries skip the embedder round trip.
type embeddingCache struct {
	mu         sync.RWMutex
	embeddings map[string][]float32
}

func newEmbeddingCache() *embeddingCache {
	return &embeddingCache{embeddings: make(map[string][]float32)}
}

func (c *embeddingCache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emb, ok := c.embeddings[key]
	return emb, ok
}

func (c *embeddingCache) Put(key string, emb []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddings[key] = emb
}

func (c *embeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.embeddings)
}
