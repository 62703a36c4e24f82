package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle(t *testing.T) {
	t.Parallel()

	t.Run("zero interval never blocks", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(0)
		assert.False(t, th.Enabled())

		start := time.Now()
		for i := 0; i < 100; i++ {
			require.NoError(t, th.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("nil throttle never blocks", func(t *testing.T) {
		t.Parallel()

		var th *Throttle
		assert.False(t, th.Enabled())
		assert.NoError(t, th.Wait(context.Background()))
	})

	t.Run("positive interval spaces requests", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(50 * time.Millisecond)
		assert.True(t, th.Enabled())

		ctx := context.Background()
		require.NoError(t, th.Wait(ctx)) // first request passes immediately

		start := time.Now()
		require.NoError(t, th.Wait(ctx))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("cancelled context interrupts the wait", func(t *testing.T) {
		t.Parallel()

		th := NewThrottle(time.Hour)
		ctx := context.Background()
		require.NoError(t, th.Wait(ctx)) // consume the initial token

		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		assert.Error(t, th.Wait(ctx))
	})
}
