package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte("payload"), time.Minute)
	assert.NotEmpty(t, etag)

	data, gotTag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, etag, gotTag)
}

func TestGetMiss(t *testing.T) {
	c := New(true)
	_, _, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("x"), -time.Second)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)

	etag := c.Set("k", []byte("x"), time.Minute)
	assert.NotEmpty(t, etag) // ETag still computed for conditional requests

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("x"), time.Minute)
	c.Set("dead", []byte("y"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestComputeETag(t *testing.T) {
	a := ComputeETag([]byte("same"))
	b := ComputeETag([]byte("same"))
	other := ComputeETag([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.True(t, len(a) > 4 && a[:3] == `W/"`)
}

func TestETagMatch(t *testing.T) {
	assert.True(t, ETagMatch(`W/"abc"`, `W/"abc"`))
	assert.True(t, ETagMatch("*", `W/"abc"`))
	assert.False(t, ETagMatch("", `W/"abc"`))
	assert.False(t, ETagMatch(`W/"abc"`, `W/"def"`))
}
