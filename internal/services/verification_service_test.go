package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
)

const testPhone = "+254712345678"

// storedCode reads the live code straight from the store so tests do not
// have to scrape it out of the SMS body.
func storedCode(t *testing.T, f *fixture, phone string) string {
	t.Helper()
	rec, err := f.otpRepo.GetCode(context.Background(), phone)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.Code
}

func TestRequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsCodeAndEnforcesRequestWindow", func(t *testing.T) {
		f := newFixture()

		resp, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationRegistration)
		require.NoError(t, err)
		require.True(t, resp.OTPSent)
		require.Len(t, f.gateway.sentTo(testPhone), 1)

		// Immediate re-request lands inside the 60s window.
		resp, err = f.verification.RequestOTP(ctx, testPhone, models.VerificationRegistration)
		require.NoError(t, err)
		require.False(t, resp.OTPSent)
		require.Contains(t, resp.Message, "Please wait")
		require.Len(t, f.gateway.sentTo(testPhone), 1)
	})

	t.Run("GatewayFailureKeepsCode", func(t *testing.T) {
		f := newFixture()
		f.gateway.failAll = true

		resp, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationRegistration)
		require.NoError(t, err)
		require.False(t, resp.OTPSent)
		require.Equal(t, "Failed to send OTP. Please try again.", resp.Message)

		// The code survives the failed delivery and still verifies.
		code := storedCode(t, f, testPhone)
		verify, err := f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationRegistration)
		require.NoError(t, err)
		require.True(t, verify.Verified)
	})

	t.Run("HourlyCapRejectsExcessRequests", func(t *testing.T) {
		f := newFixture()
		f.cfg.OTPRequestInterval = 0 // only the hourly cap in play

		for i := 0; i < f.cfg.SMSLimitPerNumberPerHour; i++ {
			resp, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
			require.NoError(t, err)
			require.True(t, resp.OTPSent)
		}

		resp, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
		require.NoError(t, err)
		require.False(t, resp.OTPSent)
		require.Contains(t, resp.Message, "Too many verification requests")
	})
}

func TestVerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("CodeVerifiesExactlyOnce", func(t *testing.T) {
		f := newFixture()
		_, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
		require.NoError(t, err)
		code := storedCode(t, f, testPhone)

		resp, err := f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationVoting)
		require.NoError(t, err)
		require.True(t, resp.Verified)

		// Replaying the same code finds no record.
		resp, err = f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationVoting)
		require.NoError(t, err)
		require.False(t, resp.Verified)
		require.Nil(t, resp.ExpiresAt)
	})

	t.Run("LockoutAfterMaxAttempts", func(t *testing.T) {
		f := newFixture()
		_, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
		require.NoError(t, err)
		code := storedCode(t, f, testPhone)

		for i := 0; i < f.cfg.MaxOTPAttempts; i++ {
			resp, err := f.verification.VerifyOTP(ctx, testPhone, "000000", models.VerificationVoting)
			require.NoError(t, err)
			require.False(t, resp.Verified)
		}

		// The fourth attempt is locked out even with the right code.
		resp, err := f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationVoting)
		require.NoError(t, err)
		require.False(t, resp.Verified)
	})

	t.Run("TypeMismatchDoesNotConsumeAttempt", func(t *testing.T) {
		f := newFixture()
		_, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
		require.NoError(t, err)
		code := storedCode(t, f, testPhone)

		resp, err := f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationRegistration)
		require.NoError(t, err)
		require.False(t, resp.Verified)

		rec, err := f.otpRepo.GetCode(ctx, testPhone)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, 0, rec.Attempts)

		// The matching type still verifies afterwards.
		resp, err = f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationVoting)
		require.NoError(t, err)
		require.True(t, resp.Verified)
	})

	t.Run("RegistrationSuccessMarksMemberVerified", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		member := f.seedMember(ctx, groupID, testPhone, false)

		_, err := f.verification.RequestOTP(ctx, testPhone, models.VerificationRegistration)
		require.NoError(t, err)
		code := storedCode(t, f, testPhone)

		resp, err := f.verification.VerifyOTP(ctx, testPhone, code, models.VerificationRegistration)
		require.NoError(t, err)
		require.True(t, resp.Verified)

		updated, err := f.memberRepo.GetMemberByID(ctx, member.ID)
		require.NoError(t, err)
		require.True(t, updated.PhoneVerified)
	})
}

func TestOTPStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	status, err := f.verification.OTPStatus(ctx, testPhone)
	require.NoError(t, err)
	require.Nil(t, status)

	_, err = f.verification.RequestOTP(ctx, testPhone, models.VerificationVoting)
	require.NoError(t, err)

	status, err = f.verification.OTPStatus(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Equal(t, f.cfg.MaxOTPAttempts, status.AttemptsRemaining)
	require.False(t, status.CanRequestNew)

	_, err = f.verification.VerifyOTP(ctx, testPhone, "000000", models.VerificationVoting)
	require.NoError(t, err)

	status, err = f.verification.OTPStatus(ctx, testPhone)
	require.NoError(t, err)
	require.NotNil(t, status)
	require.Equal(t, f.cfg.MaxOTPAttempts-1, status.AttemptsRemaining)
}
