package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(true)

	etag := c.Set("k", []byte("payload"), time.Minute)
	assert.NotEmpty(t, etag)

	data, gotETag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, etag, gotETag)

	_, _, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", []byte("v"), -time.Second)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := New(false)

	etag := c.Set("k", []byte("v"), time.Minute)
	assert.NotEmpty(t, etag, "disabled cache still computes the ETag for the response")

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := New(true)
	c.Set("live", []byte("v"), time.Minute)
	c.Set("dead", []byte("v"), -time.Second)

	stats := c.Stats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestComputeETagStable(t *testing.T) {
	a := ComputeETag([]byte("x"))
	b := ComputeETag([]byte("x"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ComputeETag([]byte("y")))
	assert.Contains(t, a, `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
