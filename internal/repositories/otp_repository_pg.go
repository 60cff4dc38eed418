package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// pgOTPRepository backs the OTP store with the otp_codes table. The
// conditional upsert keeps the rate-limit check and the write in one
// statement, preserving the per-phone atomicity contract.
type pgOTPRepository struct {
	db DB
}

func NewPGOTPRepository(db DB) OTPRepository {
	return &pgOTPRepository{db: db}
}

func (r *pgOTPRepository) CreateCode(ctx context.Context, rec *models.OTPRecord, minInterval time.Duration) (time.Duration, error) {
	q := `
        INSERT INTO otp_codes
            (phone_number, code, verification_type, expires_at, attempts, last_request_at)
        VALUES ($1, $2, $3, $4, 0, NOW())
        ON CONFLICT (phone_number) DO UPDATE
        SET code = EXCLUDED.code,
            verification_type = EXCLUDED.verification_type,
            expires_at = EXCLUDED.expires_at,
            attempts = 0,
            last_request_at = NOW()
        WHERE otp_codes.last_request_at <= NOW() - $5::interval
        RETURNING last_request_at
    `
	var lastRequestAt time.Time
	err := r.db.QueryRow(ctx, q, rec.PhoneNumber, rec.Code, rec.VerificationType, rec.ExpiresAt, minInterval).
		Scan(&lastRequestAt)
	if err == nil {
		return 0, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}

	// Conflict row was too fresh; report the remaining wait.
	var prev time.Time
	err = r.db.QueryRow(ctx, `SELECT last_request_at FROM otp_codes WHERE phone_number = $1`, rec.PhoneNumber).
		Scan(&prev)
	if err != nil {
		return 0, err
	}
	wait := minInterval - time.Since(prev)
	if wait < 0 {
		wait = 0
	}
	return wait, utils.ErrRateLimited
}

func (r *pgOTPRepository) GetCode(ctx context.Context, phoneNumber string) (*models.OTPRecord, error) {
	q := `
        SELECT phone_number, code, verification_type, expires_at, attempts, last_request_at
        FROM otp_codes
        WHERE phone_number = $1
    `
	var rec models.OTPRecord
	err := r.db.QueryRow(ctx, q, phoneNumber).Scan(
		&rec.PhoneNumber,
		&rec.Code,
		&rec.VerificationType,
		&rec.ExpiresAt,
		&rec.Attempts,
		&rec.LastRequestAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *pgOTPRepository) DeleteCode(ctx context.Context, phoneNumber string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otp_codes WHERE phone_number = $1`, phoneNumber)
	return err
}

func (r *pgOTPRepository) IncrementAttempts(ctx context.Context, phoneNumber string) (int, error) {
	q := `UPDATE otp_codes SET attempts = attempts + 1 WHERE phone_number = $1 RETURNING attempts`
	var attempts int
	err := r.db.QueryRow(ctx, q, phoneNumber).Scan(&attempts)
	if err == pgx.ErrNoRows {
		return 0, utils.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

func (r *pgOTPRepository) CleanupExpired(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM otp_codes WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
