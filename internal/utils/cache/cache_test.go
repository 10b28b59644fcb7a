package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSetInvalidate(t *testing.T) {
	c := New[string, int](time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok, "Empty cache should miss")

	c.Set("a", 42)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	c.Invalidate("a")
	_, ok = c.Get("a")
	assert.False(t, ok, "Invalidated key should miss")
}

func TestEntriesExpire(t *testing.T) {
	c := New[string, string](time.Minute)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok, "Fresh entry should hit")

	current = current.Add(61 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "Expired entry should miss")
}

func TestSetResetsLifetime(t *testing.T) {
	c := New[string, string](time.Minute)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("k", "v1")
	current = current.Add(45 * time.Second)
	c.Set("k", "v2")
	current = current.Add(45 * time.Second)

	got, ok := c.Get("k")
	assert.True(t, ok, "Rewritten entry should still be live")
	assert.Equal(t, "v2", got)
}

func TestPurge(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}
