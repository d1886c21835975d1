package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/adapters/store"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

type listing struct {
	Names []string `json:"names"`
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := cache.New(store.NewMemoryStore(0), logger.Discard())
	c.Set("users:all", cache.CategoryUsers, listing{Names: []string{"alice", "bob"}})

	var got listing
	require.True(t, c.Get("users:all", &got))
	assert.Equal(t, []string{"alice", "bob"}, got.Names)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.InDelta(t, float64(5*time.Minute), float64(stats.TTLRemaining["users:all"]), float64(time.Second))
}

func TestCache_TTLExpiry(t *testing.T) {
	t.Parallel()

	clock := newClock()
	backing := store.NewMemoryStore(0)
	c := cache.New(backing, logger.Discard(), cache.WithClock(clock.Now))

	c.Set("users:all", cache.CategoryUsers, listing{Names: []string{"alice"}})

	var got listing
	clock.Advance(4 * time.Minute)
	require.True(t, c.Get("users:all", &got), "entry should live inside its ttl")

	clock.Advance(2 * time.Minute)
	require.False(t, c.Get("users:all", &got), "entry should expire after 5m")

	// The expired entry was removed on read.
	keys, err := backing.Keys(cache.Prefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCache_PerCategoryTTL(t *testing.T) {
	t.Parallel()

	clock := newClock()
	c := cache.New(store.NewMemoryStore(0), logger.Discard(), cache.WithClock(clock.Now))

	c.Set("users:all", cache.CategoryUsers, listing{})
	c.Set("groups:all", cache.CategoryGroups, listing{})

	clock.Advance(7 * time.Minute)

	var got listing
	assert.False(t, c.Get("users:all", &got), "users ttl is 5m")
	assert.True(t, c.Get("groups:all", &got), "groups ttl is 10m")
}

func TestCache_CorruptEntryPurged(t *testing.T) {
	t.Parallel()

	backing := store.NewMemoryStore(0)
	c := cache.New(backing, logger.Discard())

	require.NoError(t, backing.Set(cache.Prefix+"users:all", []byte("{not json")))

	var got listing
	require.False(t, c.Get("users:all", &got))

	_, ok, err := backing.Get(cache.Prefix + "users:all")
	require.NoError(t, err)
	assert.False(t, ok, "corrupt entry should be purged")
}

func TestCache_ChecksumMismatchPurged(t *testing.T) {
	t.Parallel()

	backing := store.NewMemoryStore(0)
	c := cache.New(backing, logger.Discard())

	// A well-formed envelope whose checksum does not match its payload.
	env := map[string]any{
		"v":         json.RawMessage(`{"names":["alice"]}`),
		"createdAt": time.Now(),
		"expiresAt": time.Now().Add(time.Hour),
		"sum":       uint64(12345),
	}
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, backing.Set(cache.Prefix+"users:all", raw))

	var got listing
	require.False(t, c.Get("users:all", &got))

	_, ok, err := backing.Get(cache.Prefix + "users:all")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_FailingStoreDegradesToMiss(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	backing := mocks.NewMockBackingStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	boom := errors.New("disk on fire")
	backing.EXPECT().Get(gomock.Any()).Return(nil, false, boom).AnyTimes()
	backing.EXPECT().Set(gomock.Any(), gomock.Any()).Return(boom).AnyTimes()
	backing.EXPECT().Keys(gomock.Any()).Return(nil, boom).AnyTimes()
	backing.EXPECT().Remove(gomock.Any()).Return(boom).AnyTimes()

	c := cache.New(backing, log)

	// None of these may panic or surface an error.
	c.Set("users:all", cache.CategoryUsers, listing{Names: []string{"alice"}})

	var got listing
	assert.False(t, c.Get("users:all", &got))

	c.Remove("users:all")
	c.Clear()

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0, stats.Entries)
}

func TestCache_QuotaExceededIsSwallowed(t *testing.T) {
	t.Parallel()

	backing := store.NewMemoryStore(64)
	c := cache.New(backing, logger.Discard())

	c.Set("users:all", cache.CategoryUsers, listing{
		Names: []string{"a-name-long-enough-to-blow-the-tiny-quota-for-sure"},
	})

	var got listing
	assert.False(t, c.Get("users:all", &got))
}

func TestCache_ClearIsPrefixScoped(t *testing.T) {
	t.Parallel()

	backing := store.NewMemoryStore(0)
	c := cache.New(backing, logger.Discard())

	c.Set("users:all", cache.CategoryUsers, listing{})
	c.Set("groups:all", cache.CategoryGroups, listing{})
	require.NoError(t, backing.Set("unrelated", []byte("keep me")))

	c.Clear()

	keys, err := backing.Keys("")
	require.NoError(t, err)
	assert.Equal(t, []string{"unrelated"}, keys)
}

func TestCache_StatsExcludesExpiredWithoutEvicting(t *testing.T) {
	t.Parallel()

	clock := newClock()
	backing := store.NewMemoryStore(0)
	c := cache.New(backing, logger.Discard(), cache.WithClock(clock.Now))

	c.Set("users:all", cache.CategoryUsers, listing{})
	c.Set("groups:all", cache.CategoryGroups, listing{})
	clock.Advance(6 * time.Minute)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Positive(t, stats.TotalBytes)
	assert.Contains(t, stats.TTLRemaining, "groups:all")
	assert.NotContains(t, stats.TTLRemaining, "users:all")

	// No sweeper: the expired entry stays stored until the next read.
	keys, err := backing.Keys(cache.Prefix)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}
