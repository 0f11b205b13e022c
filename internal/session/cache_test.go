package session

import (
	"fmt"
	"testing"

	"genoscope/domain/core"
	"genoscope/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(id string) *models.Run {
	return &models.Run{ID: core.RunID(id)}
}

func TestCachePutGetLatest(t *testing.T) {
	cache := NewCache(4)

	cache.Put(testRun("a"))
	cache.Put(testRun("b"))

	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, core.RunID("a"), got.ID)

	latest, ok := cache.Latest()
	require.True(t, ok)
	assert.Equal(t, core.RunID("b"), latest.ID)
}

func TestCacheEvictsOldest(t *testing.T) {
	cache := NewCache(2)

	for i := 0; i < 3; i++ {
		cache.Put(testRun(fmt.Sprintf("run-%d", i)))
	}

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("run-0")
	assert.False(t, ok)
	_, ok = cache.Get("run-2")
	assert.True(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache(4)
	cache.Put(testRun("a"))

	cache.Invalidate()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Latest()
	assert.False(t, ok)
}

func TestCacheIgnoresNilAndEmpty(t *testing.T) {
	cache := NewCache(4)

	cache.Put(nil)
	cache.Put(&models.Run{})

	assert.Equal(t, 0, cache.Len())
}

func TestCachePutSameIDUpdatesInPlace(t *testing.T) {
	cache := NewCache(2)

	cache.Put(testRun("a"))
	updated := testRun("a")
	updated.Sources = []string{"KEGG"}
	cache.Put(updated)

	assert.Equal(t, 1, cache.Len())
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"KEGG"}, got.Sources)
}
