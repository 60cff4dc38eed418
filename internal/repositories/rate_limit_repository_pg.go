package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
)

type pgRateLimitRepository struct {
	db DB
}

func NewPGRateLimitRepository(db DB) RateLimitRepository {
	return &pgRateLimitRepository{db: db}
}

func (r *pgRateLimitRepository) IncrementAndCheck(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	query := `
        INSERT INTO rate_limit_counters (key, attempt_count, expires_at)
        VALUES ($1, 1, NOW() + $2::interval)
        ON CONFLICT (key) DO UPDATE
        SET attempt_count = CASE
            WHEN rate_limit_counters.expires_at < NOW() THEN 1
            ELSE rate_limit_counters.attempt_count + 1
        END,
        expires_at = CASE
            WHEN rate_limit_counters.expires_at < NOW() THEN NOW() + $2::interval
            ELSE rate_limit_counters.expires_at
        END
        RETURNING attempt_count
    `
	var currentCount int
	err := r.db.QueryRow(ctx, query, key, window).Scan(&currentCount)
	if err != nil && err != pgx.ErrNoRows {
		return false, err
	}
	return currentCount <= limit, nil
}

func (r *pgRateLimitRepository) CleanupExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rate_limit_counters WHERE expires_at < NOW()`)
	return err
}
