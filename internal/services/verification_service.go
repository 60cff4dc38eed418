package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/config"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// VerificationService issues and checks one-time codes proving control of
// a phone number. Rejections (rate limit, bad code, expiry, lockout) are
// reported in the response payload, not as errors; errors are reserved
// for store failures.
type VerificationService interface {
	RequestOTP(ctx context.Context, phoneNumber string, verificationType models.VerificationType) (*dtos.OTPRequestResponse, error)
	VerifyOTP(ctx context.Context, phoneNumber, code string, verificationType models.VerificationType) (*dtos.OTPVerifyResponse, error)
	// OTPStatus returns nil when no live code exists for the number.
	OTPStatus(ctx context.Context, phoneNumber string) (*dtos.OTPStatusResponse, error)
}

type verificationService struct {
	otpRepo     repositories.OTPRepository
	memberRepo  repositories.MemberRepository
	kycService  KYCService
	rateLimiter RateLimiterService
	gateway     SMSGateway
	cfg         *config.Config
}

func NewVerificationService(
	otpRepo repositories.OTPRepository,
	memberRepo repositories.MemberRepository,
	kycService KYCService,
	rateLimiter RateLimiterService,
	gateway SMSGateway,
	cfg *config.Config,
) VerificationService {
	return &verificationService{
		otpRepo:     otpRepo,
		memberRepo:  memberRepo,
		kycService:  kycService,
		rateLimiter: rateLimiter,
		gateway:     gateway,
		cfg:         cfg,
	}
}

func (s *verificationService) RequestOTP(ctx context.Context, phoneNumber string, verificationType models.VerificationType) (*dtos.OTPRequestResponse, error) {
	utils.Logger.Infof("OTP requested for %s, type: %s", phoneNumber, verificationType)

	if err := s.rateLimiter.CheckSMSRateLimits(ctx, phoneNumber); err != nil {
		if err == utils.ErrRateLimited {
			return &dtos.OTPRequestResponse{
				PhoneNumber: phoneNumber,
				OTPSent:     false,
				ExpiresAt:   time.Now(),
				Message:     "Too many verification requests. Please try again later.",
			}, nil
		}
		return nil, err
	}

	code, err := utils.RandomNumericString(s.cfg.OTPLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &models.OTPRecord{
		PhoneNumber:      phoneNumber,
		Code:             code,
		VerificationType: verificationType,
		ExpiresAt:        now.Add(s.cfg.OTPExpiry),
		Attempts:         0,
		LastRequestAt:    now,
	}

	wait, err := s.otpRepo.CreateCode(ctx, rec, s.cfg.OTPRequestInterval)
	if err == utils.ErrRateLimited {
		return &dtos.OTPRequestResponse{
			PhoneNumber: phoneNumber,
			OTPSent:     false,
			ExpiresAt:   now,
			Message:     fmt.Sprintf("Please wait %d seconds before requesting another code", int(wait.Round(time.Second).Seconds())),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	// The record stays stored on transport failure so a retried request
	// still hits the re-request window.
	body := fmt.Sprintf(
		"Your Harambee DAO verification code is: %s. Valid for %d minutes. Do not share this code.",
		code, int(s.cfg.OTPExpiry.Minutes()),
	)
	if sendErr := s.gateway.Send(ctx, phoneNumber, body); sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send OTP to %s", phoneNumber)
		return &dtos.OTPRequestResponse{
			PhoneNumber: phoneNumber,
			OTPSent:     false,
			ExpiresAt:   rec.ExpiresAt,
			Message:     "Failed to send OTP. Please try again.",
		}, nil
	}

	utils.Logger.Infof("OTP sent successfully to %s", phoneNumber)
	return &dtos.OTPRequestResponse{
		PhoneNumber: phoneNumber,
		OTPSent:     true,
		ExpiresAt:   rec.ExpiresAt,
		Message:     "OTP sent successfully",
	}, nil
}

func (s *verificationService) VerifyOTP(ctx context.Context, phoneNumber, code string, verificationType models.VerificationType) (*dtos.OTPVerifyResponse, error) {
	utils.Logger.Infof("OTP verification attempt for %s", phoneNumber)

	failed := func(expiresAt *time.Time) *dtos.OTPVerifyResponse {
		return &dtos.OTPVerifyResponse{
			PhoneNumber:      phoneNumber,
			Verified:         false,
			VerificationType: string(verificationType),
			ExpiresAt:        expiresAt,
		}
	}

	rec, err := s.otpRepo.GetCode(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		utils.Logger.Warnf("No OTP found for %s", phoneNumber)
		return failed(nil), nil
	}

	if time.Now().After(rec.ExpiresAt) {
		utils.Logger.Warnf("Expired OTP for %s", phoneNumber)
		if err := s.otpRepo.DeleteCode(ctx, phoneNumber); err != nil {
			return nil, err
		}
		return failed(&rec.ExpiresAt), nil
	}

	if rec.VerificationType != verificationType {
		utils.Logger.Warnf("Verification type mismatch for %s: expected %s, got %s",
			phoneNumber, rec.VerificationType, verificationType)
		return failed(&rec.ExpiresAt), nil
	}

	attempts, err := s.otpRepo.IncrementAttempts(ctx, phoneNumber)
	if err != nil {
		if err == utils.ErrNotFound {
			// Raced with a concurrent success or cleanup.
			return failed(nil), nil
		}
		return nil, err
	}

	if attempts > s.cfg.MaxOTPAttempts {
		utils.Logger.Warnf("Max OTP attempts exceeded for %s", phoneNumber)
		if err := s.otpRepo.DeleteCode(ctx, phoneNumber); err != nil {
			return nil, err
		}
		return failed(nil), nil
	}

	if rec.Code != code {
		utils.Logger.Warnf("Invalid OTP for %s (attempt %d/%d)", phoneNumber, attempts, s.cfg.MaxOTPAttempts)
		return failed(&rec.ExpiresAt), nil
	}

	if err := s.otpRepo.DeleteCode(ctx, phoneNumber); err != nil {
		return nil, err
	}
	utils.Logger.Infof("OTP verified successfully for %s", phoneNumber)

	if verificationType == models.VerificationRegistration {
		s.markPhoneVerified(ctx, phoneNumber)
	}

	return &dtos.OTPVerifyResponse{
		PhoneNumber:      phoneNumber,
		Verified:         true,
		VerificationType: string(verificationType),
		ExpiresAt:        &rec.ExpiresAt,
	}, nil
}

// markPhoneVerified flips the directory flag and attempts automatic KYC
// elevation. Neither step may fail the verification response.
func (s *verificationService) markPhoneVerified(ctx context.Context, phoneNumber string) {
	member, err := s.memberRepo.GetMemberByPhone(ctx, phoneNumber)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to look up member for %s after verification", phoneNumber)
		return
	}
	if member == nil {
		return
	}

	if err := s.memberRepo.SetPhoneVerified(ctx, member.ID); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to mark phone verified for member %s", member.ID)
		return
	}
	utils.Logger.Infof("Updated phone verification status for member %s", member.ID)

	if _, err := s.kycService.AutoElevate(ctx, member.ID); err != nil {
		utils.Logger.WithError(err).Warnf("Auto KYC elevation failed for member %s", member.ID)
	}
}

func (s *verificationService) OTPStatus(ctx context.Context, phoneNumber string) (*dtos.OTPStatusResponse, error) {
	rec, err := s.otpRepo.GetCode(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	if time.Now().After(rec.ExpiresAt) {
		if err := s.otpRepo.DeleteCode(ctx, phoneNumber); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &dtos.OTPStatusResponse{
		PhoneNumber:       phoneNumber,
		VerificationType:  string(rec.VerificationType),
		ExpiresAt:         rec.ExpiresAt,
		AttemptsRemaining: s.cfg.MaxOTPAttempts - rec.Attempts,
		CanRequestNew:     time.Since(rec.LastRequestAt) >= s.cfg.OTPRequestInterval,
	}, nil
}
