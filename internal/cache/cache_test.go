package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := New(10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCleanExpired(t *testing.T) {
	c := New(10, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.CleanExpired()

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Empty(t, c.items)
}

func TestDeleteAndClear(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("b", 2)
	c.Set("c", 3)
	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestSetUpdatesExisting(t *testing.T) {
	c := New(10, time.Minute)

	c.Set("a", 1)
	c.Set("a", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
