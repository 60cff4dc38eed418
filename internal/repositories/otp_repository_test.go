package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

func otpRecord(phone string, expiresAt, lastRequestAt time.Time) *models.OTPRecord {
	return &models.OTPRecord{
		PhoneNumber:      phone,
		Code:             "123456",
		VerificationType: models.VerificationRegistration,
		ExpiresAt:        expiresAt,
		LastRequestAt:    lastRequestAt,
	}
}

func TestMemoryOTPRepositoryCreateCode(t *testing.T) {
	ctx := context.Background()
	phone := "+254712345678"

	t.Run("RejectsWithinRequestWindow", func(t *testing.T) {
		repo := NewMemoryOTPRepository()
		now := time.Now()

		_, err := repo.CreateCode(ctx, otpRecord(phone, now.Add(10*time.Minute), now), time.Minute)
		require.NoError(t, err)

		wait, err := repo.CreateCode(ctx, otpRecord(phone, now.Add(10*time.Minute), now), time.Minute)
		require.ErrorIs(t, err, utils.ErrRateLimited)
		require.Greater(t, wait, time.Duration(0))
		require.LessOrEqual(t, wait, time.Minute)
	})

	t.Run("OverwritesAfterWindow", func(t *testing.T) {
		repo := NewMemoryOTPRepository()
		now := time.Now()

		stale := otpRecord(phone, now.Add(10*time.Minute), now.Add(-2*time.Minute))
		stale.Code = "111111"
		stale.Attempts = 2
		_, err := repo.CreateCode(ctx, stale, time.Minute)
		require.NoError(t, err)

		fresh := otpRecord(phone, now.Add(10*time.Minute), now)
		fresh.Code = "222222"
		_, err = repo.CreateCode(ctx, fresh, time.Minute)
		require.NoError(t, err)

		rec, err := repo.GetCode(ctx, phone)
		require.NoError(t, err)
		require.Equal(t, "222222", rec.Code)
		require.Equal(t, 0, rec.Attempts)
	})
}

func TestMemoryOTPRepositoryIncrementAttempts(t *testing.T) {
	ctx := context.Background()
	phone := "+254712345678"
	repo := NewMemoryOTPRepository()

	_, err := repo.IncrementAttempts(ctx, phone)
	require.ErrorIs(t, err, utils.ErrNotFound)

	now := time.Now()
	_, err = repo.CreateCode(ctx, otpRecord(phone, now.Add(10*time.Minute), now), time.Minute)
	require.NoError(t, err)

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrementAttempts(ctx, phone)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestMemoryOTPRepositoryCleanupExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOTPRepository()
	now := time.Now()

	_, err := repo.CreateCode(ctx, otpRecord("+254700000001", now.Add(-time.Minute), now), time.Minute)
	require.NoError(t, err)
	_, err = repo.CreateCode(ctx, otpRecord("+254700000002", now.Add(10*time.Minute), now), time.Minute)
	require.NoError(t, err)

	removed, err := repo.CleanupExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	rec, err := repo.GetCode(ctx, "+254700000001")
	require.NoError(t, err)
	require.Nil(t, rec)
	rec, err = repo.GetCode(ctx, "+254700000002")
	require.NoError(t, err)
	require.NotNil(t, rec)
}
