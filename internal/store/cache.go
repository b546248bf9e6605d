package store

import (
	"sync"
	"time"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// DefaultCacheTTL matches the short-lived read cache the shop pages rely on.
const DefaultCacheTTL = 5 * time.Minute

// queryCache is a small in-process TTL cache for card list reads, keyed by
// query name. It is an optimization only: every mutation drops the whole
// cache, and callers can bypass it when freshness matters (stock checks
// always go straight to the database).
type queryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	cards     []models.Card
	expiresAt time.Time
}

func newQueryCache(ttl time.Duration) *queryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &queryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *queryCache) get(key string) ([]models.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.cards, true
}

func (c *queryCache) set(key string, cards []models.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{cards: cards, expiresAt: c.now().Add(c.ttl)}
}

func (c *queryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
