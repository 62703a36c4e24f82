package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/githarvest-go/internal/domain"
)

func newTestCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBadgerCache(t *testing.T) {
	t.Parallel()

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "https://h/api/v3/fess/info", []byte(`{"version":"1"}`), time.Hour))

		got, err := c.Get(ctx, "https://h/api/v3/fess/info")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":"1"}`), got)
		assert.True(t, c.Has(ctx, "https://h/api/v3/fess/info"))
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)

		_, err := c.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.False(t, c.Has(context.Background(), "nope"))
	})

	t.Run("delete removes the key", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
		require.NoError(t, c.Delete(ctx, "k"))

		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("entries expire after their ttl", func(t *testing.T) {
		t.Parallel()

		c := newTestCache(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "short", []byte("v"), 100*time.Millisecond))
		time.Sleep(300 * time.Millisecond)

		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("persists to a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c, err := NewBadgerCache(Options{Directory: dir})
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
		require.NoError(t, c.Close())

		reopened, err := NewBadgerCache(Options{Directory: dir})
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	})
}
