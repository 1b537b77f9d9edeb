package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveCache_SetGet(t *testing.T) {
	c := &ArchiveCache{store: map[string]*CacheEntry{}, ttl: time.Hour}
	key := MonthCacheKey(DataTypeDAMLBMP, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), "CENTRL")

	_, found := c.Get(key)
	assert.False(t, found)

	points := []PricePoint{{Time: time.Now(), LBMPPerMWh: 25}}
	c.Set(key, points)

	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, points, got)
}

func TestArchiveCache_Expiry(t *testing.T) {
	c := &ArchiveCache{store: map[string]*CacheEntry{}, ttl: -time.Second}
	c.Set("k", []PricePoint{{LBMPPerMWh: 1}})

	_, found := c.Get("k")
	assert.False(t, found)

	// The expired entry is evicted, not just hidden.
	assert.Empty(t, c.store)
}

func TestArchiveCache_Clear(t *testing.T) {
	c := &ArchiveCache{store: map[string]*CacheEntry{}, ttl: time.Hour}
	c.Set("k", []PricePoint{{LBMPPerMWh: 1}})
	c.Clear()

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestArchiveCache_NilSafe(t *testing.T) {
	var c *ArchiveCache
	c.Set("k", nil)
	_, found := c.Get("k")
	assert.False(t, found)
	c.Clear()
}

func TestGetCache_DisabledByDefault(t *testing.T) {
	t.Setenv("ENABLE_NYISO_CACHE", "")
	assert.Nil(t, GetCache())
}

func TestMonthCacheKey(t *testing.T) {
	key := MonthCacheKey(DataTypeDAMLBMP, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), "N.Y.C.")
	assert.Equal(t, "damlbmp:201803:N.Y.C.", key)
}
