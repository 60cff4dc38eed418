package services

import (
	"context"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// CleanupService sweeps expired verification codes and stale rate-limit
// counters. Scheduled from main; also safe to invoke ad hoc.
type CleanupService interface {
	Run(ctx context.Context)
}

type cleanupService struct {
	otpRepo       repositories.OTPRepository
	rateLimitRepo repositories.RateLimitRepository
}

func NewCleanupService(otpRepo repositories.OTPRepository, rateLimitRepo repositories.RateLimitRepository) CleanupService {
	return &cleanupService{otpRepo: otpRepo, rateLimitRepo: rateLimitRepo}
}

func (s *cleanupService) Run(ctx context.Context) {
	removed, err := s.otpRepo.CleanupExpired(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to clean up expired OTP codes")
	} else if removed > 0 {
		utils.Logger.Infof("Cleaned up %d expired OTP codes", removed)
	}

	if err := s.rateLimitRepo.CleanupExpired(ctx); err != nil {
		utils.Logger.WithError(err).Error("Failed to clean up expired rate limit counters")
	}
}
