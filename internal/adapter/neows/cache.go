package neows

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/couchcryptid/impactviz-service/internal/domain"
	"github.com/couchcryptid/impactviz-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedCatalog wraps a NEOCatalog with an in-memory LRU cache whose entries
// expire after a fixed TTL.
type CachedCatalog struct {
	inner   domain.NEOCatalog
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedCatalog creates a cache decorator around a catalog.
func NewCachedCatalog(inner domain.NEOCatalog, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedCatalog {
	return &CachedCatalog{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl, clock),
		metrics: metrics,
	}
}

func (c *CachedCatalog) Browse(ctx context.Context, page int) (json.RawMessage, error) {
	if body, ok := c.cache.get(page); ok {
		c.metrics.CatalogCache.WithLabelValues("hit").Inc()
		return body, nil
	}
	c.metrics.CatalogCache.WithLabelValues("miss").Inc()

	body, err := c.inner.Browse(ctx, page)
	if err != nil {
		// Failures are not cached so the next request retries upstream.
		return nil, err
	}
	c.cache.put(page, body)
	return body, nil
}

// lruCache is a thread-safe LRU cache of catalog pages with expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock
	mu         sync.Mutex
	entries    map[int]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key     int
	value   json.RawMessage
	expires time.Time
	prev    *entry
	next    *entry
}

func newLRUCache(maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[int]*entry),
	}
}

func (c *lruCache) get(key int) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, key)
		c.remove(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key int, value json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expires = expires
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expires: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
