package graphql

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// documentCache memoizes parsed-and-validated documents by source text, so
// that the same document text executed again against the same schema
// pays the parse/validate cost only once (spec.md §5 "a parsed
// Document is safe to cache and re-execute"). groupcache/lru.Cache is not
// safe for concurrent use on its own, hence the mutex.
type documentCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func newDocumentCache(maxEntries int) *documentCache {
	return &documentCache{cache: lru.New(maxEntries)}
}

func (c *documentCache) get(key string) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Document), true
}

func (c *documentCache) put(key string, doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, doc)
}
