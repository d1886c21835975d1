// Package cache implements the best-effort TTL lookup cache in front of the
// directory gateway. Every failure inside the cache degrades to a miss; no
// error ever reaches a caller.
package cache

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prefix namespaces every cache key in the backing store so that Clear can
// drop cache entries without touching unrelated keys.
const Prefix = "grove:"

// Category determines the TTL applied to an entry at write time.
type Category string

const (
	CategoryUsers       Category = "users"
	CategoryGroups      Category = "groups"
	CategoryMemberships Category = "memberships"
	CategoryDevices     Category = "devices"
)

// DefaultTTLs holds the per-category entry lifetimes. Membership edges churn
// faster than directory listings, so they get the short TTL.
func DefaultTTLs() map[Category]time.Duration {
	return map[Category]time.Duration{
		CategoryUsers:       5 * time.Minute,
		CategoryGroups:      10 * time.Minute,
		CategoryMemberships: 5 * time.Minute,
		CategoryDevices:     5 * time.Minute,
	}
}

// Stats is a read-only snapshot of the cache. Entries and TTLRemaining cover
// live entries only; expired or undecodable entries are excluded from the
// count but stay in the store until a Get purges them, since taking a
// snapshot must not mutate anything. TotalBytes counts stored bytes across
// all cache keys, live or not.
type Stats struct {
	Hits         uint64                   `json:"hits"`
	Misses       uint64                   `json:"misses"`
	Entries      int                      `json:"entries"`
	TotalBytes   int                      `json:"totalBytes"`
	TTLRemaining map[string]time.Duration `json:"ttlRemaining"`
}

// envelope wraps a stored value with its lifetime and an integrity checksum
// over the payload bytes.
type envelope struct {
	V         json.RawMessage `json:"v"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Sum       uint64          `json:"sum"`
}

// Cache is a TTL cache over a quota-bound backing store. It is safe for
// concurrent use as long as the backing store is.
type Cache struct {
	store ports.BackingStore
	log   ports.Logger
	ttls  map[Category]time.Duration
	now   func() time.Time

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithTTLs overrides the per-category entry lifetimes.
func WithTTLs(ttls map[Category]time.Duration) Option {
	return func(c *Cache) { c.ttls = ttls }
}

// New creates a Cache on top of the given backing store.
func New(store ports.BackingStore, log ports.Logger, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		log:   log,
		ttls:  DefaultTTLs(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the entry under key into out. It reports false on any miss:
// absent key, expired entry, corrupt payload, or a failing store. Expired
// and corrupt entries are removed on the way out.
func (c *Cache) Get(key string, out any) bool {
	raw, ok, err := c.store.Get(Prefix + key)
	if err != nil {
		c.log.Error(zerr.With(err, "key", key))
		c.miss()
		return false
	}
	if !ok {
		c.miss()
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.purge(key, "corrupt cache entry")
		c.miss()
		return false
	}
	if env.Sum != xxhash.Sum64(env.V) {
		c.purge(key, "cache entry checksum mismatch")
		c.miss()
		return false
	}
	if !c.now().Before(env.ExpiresAt) {
		c.purge(key, "")
		c.miss()
		return false
	}
	if err := json.Unmarshal(env.V, out); err != nil {
		c.purge(key, "cache entry payload does not decode")
		c.miss()
		return false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return true
}

// Set stores value under key with the category's TTL. Failures are logged
// and swallowed; a full or broken store simply means the next Get misses.
func (c *Cache) Set(key string, cat Category, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Error(zerr.With(err, "key", key))
		return
	}

	now := c.now()
	env := envelope{
		V:         payload,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl(cat)),
		Sum:       xxhash.Sum64(payload),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		c.log.Error(zerr.With(err, "key", key))
		return
	}
	if err := c.store.Set(Prefix+key, raw); err != nil {
		c.log.Error(zerr.With(err, "key", key))
	}
}

// Remove drops the entry under key, if any.
func (c *Cache) Remove(key string) {
	if err := c.store.Remove(Prefix + key); err != nil {
		c.log.Error(zerr.With(err, "key", key))
	}
}

// Clear removes every cache entry, leaving non-cache keys in the store
// untouched. Counters are reset alongside.
func (c *Cache) Clear() {
	keys, err := c.store.Keys(Prefix)
	if err != nil {
		c.log.Error(err)
		return
	}
	for _, k := range keys {
		if err := c.store.Remove(k); err != nil {
			c.log.Error(zerr.With(err, "key", k))
		}
	}

	c.mu.Lock()
	c.hits = 0
	c.misses = 0
	c.mu.Unlock()
}

// Stats walks the stored entries and reports counters, live entry count,
// stored bytes, and the remaining lifetime per live key. It never evicts;
// expired entries it encounters are left for the next Get to purge.
func (c *Cache) Stats() Stats {
	stats := Stats{TTLRemaining: map[string]time.Duration{}}

	keys, err := c.store.Keys(Prefix)
	if err != nil {
		c.log.Error(err)
		keys = nil
	}

	now := c.now()
	for _, k := range keys {
		raw, ok, err := c.store.Get(k)
		if err != nil || !ok {
			continue
		}
		stats.TotalBytes += len(raw)

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		if env.Sum != xxhash.Sum64(env.V) || !now.Before(env.ExpiresAt) {
			continue
		}
		stats.Entries++
		stats.TTLRemaining[strings.TrimPrefix(k, Prefix)] = env.ExpiresAt.Sub(now)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	stats.Hits = c.hits
	stats.Misses = c.misses
	return stats
}

func (c *Cache) ttl(cat Category) time.Duration {
	if ttl, ok := c.ttls[cat]; ok {
		return ttl
	}
	return 5 * time.Minute
}

func (c *Cache) miss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

// purge removes a bad or expired entry. Plain expiry is routine and not
// worth a log line; anything else gets reported.
func (c *Cache) purge(key, reason string) {
	if reason != "" {
		c.log.Warn(reason + ": " + key)
	}
	if err := c.store.Remove(Prefix + key); err != nil {
		c.log.Error(zerr.With(err, "key", key))
	}
}
