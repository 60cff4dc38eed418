package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimitRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		repo := NewMemoryRateLimitRepository()

		for i := 0; i < 3; i++ {
			allowed, err := repo.IncrementAndCheck(ctx, "sms:phone:+254700000001", 3, time.Hour)
			require.NoError(t, err)
			require.True(t, allowed)
		}

		allowed, err := repo.IncrementAndCheck(ctx, "sms:phone:+254700000001", 3, time.Hour)
		require.NoError(t, err)
		require.False(t, allowed)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		repo := NewMemoryRateLimitRepository()

		allowed, err := repo.IncrementAndCheck(ctx, "sms:phone:+254700000001", 1, time.Hour)
		require.NoError(t, err)
		require.True(t, allowed)

		allowed, err = repo.IncrementAndCheck(ctx, "sms:phone:+254700000002", 1, time.Hour)
		require.NoError(t, err)
		require.True(t, allowed)
	})

	t.Run("WindowExpiryResetsCounter", func(t *testing.T) {
		repo := NewMemoryRateLimitRepository()

		allowed, err := repo.IncrementAndCheck(ctx, "sms:global", 1, time.Millisecond)
		require.NoError(t, err)
		require.True(t, allowed)

		time.Sleep(5 * time.Millisecond)

		allowed, err = repo.IncrementAndCheck(ctx, "sms:global", 1, time.Millisecond)
		require.NoError(t, err)
		require.True(t, allowed)
	})
}
