package meteo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bluefin-labs/seastate/internal/domain"
	"github.com/bluefin-labs/seastate/internal/feed"
	"github.com/bluefin-labs/seastate/internal/observability"
)

// hourBucket is the cache key granularity; provider data refreshes hourly.
const hourBucket = time.Hour

// CachedSource wraps a Source with an in-memory LRU cache keyed by location
// and hour. Open-Meteo data updates hourly, so within one hour bucket a
// repeat fetch for the same coordinates is served from memory.
type CachedSource struct {
	inner   feed.Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a source.
func NewCachedSource(inner feed.Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// FetchHourly serves from cache within the current hour bucket, delegating
// to the inner source on a miss.
func (c *CachedSource) FetchHourly(ctx context.Context, lat, lon float64) (domain.Series, error) {
	bucket := domain.Now().Truncate(hourBucket).Unix()
	key := fmt.Sprintf("%.4f,%.4f@%d", lat, lon, bucket)

	if series, ok := c.cache.get(key); ok {
		c.metrics.MeteoCache.WithLabelValues("hit").Inc()
		return series, nil
	}
	c.metrics.MeteoCache.WithLabelValues("miss").Inc()

	series, err := c.inner.FetchHourly(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so transient empty responses can be retried.
	if len(series) > 0 {
		c.cache.put(key, series)
	}
	return series, nil
}

// lruCache is a simple thread-safe LRU cache for hourly series.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Series
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
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
