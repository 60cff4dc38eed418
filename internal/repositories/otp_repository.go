package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// OTPRepository holds at most one live verification code per phone number.
//
// CreateCode must be atomic with respect to the re-request window: when a
// record newer than minInterval already exists, no write happens and the
// remaining wait is returned alongside utils.ErrRateLimited.
// IncrementAttempts must return the post-increment count atomically so
// concurrent verify calls each observe a distinct count.
type OTPRepository interface {
	CreateCode(ctx context.Context, rec *models.OTPRecord, minInterval time.Duration) (time.Duration, error)
	GetCode(ctx context.Context, phoneNumber string) (*models.OTPRecord, error)
	DeleteCode(ctx context.Context, phoneNumber string) error
	IncrementAttempts(ctx context.Context, phoneNumber string) (int, error)
	CleanupExpired(ctx context.Context) (int, error)
}

// memoryOTPRepository is the default in-process store. Every method takes
// the mutex, so no reader can observe a torn record.
type memoryOTPRepository struct {
	mu      sync.Mutex
	records map[string]models.OTPRecord
}

func NewMemoryOTPRepository() OTPRepository {
	return &memoryOTPRepository{records: make(map[string]models.OTPRecord)}
}

func (r *memoryOTPRepository) CreateCode(ctx context.Context, rec *models.OTPRecord, minInterval time.Duration) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.records[rec.PhoneNumber]; ok {
		if wait := minInterval - time.Since(prev.LastRequestAt); wait > 0 {
			return wait, utils.ErrRateLimited
		}
	}
	r.records[rec.PhoneNumber] = *rec
	return 0, nil
}

func (r *memoryOTPRepository) GetCode(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[phoneNumber]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (r *memoryOTPRepository) DeleteCode(ctx context.Context, phoneNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, phoneNumber)
	return nil
}

func (r *memoryOTPRepository) IncrementAttempts(ctx context.Context, phoneNumber string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[phoneNumber]
	if !ok {
		return 0, utils.ErrNotFound
	}
	rec.Attempts++
	r.records[phoneNumber] = rec
	return rec.Attempts, nil
}

func (r *memoryOTPRepository) CleanupExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for phone, rec := range r.records {
		if now.After(rec.ExpiresAt) {
			delete(r.records, phone)
			removed++
		}
	}
	return removed, nil
}
