package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// pgShortCodeRepository backs the registry with the sms_voting_proposals
// table. The unique index on short_code arbitrates concurrent Register
// calls; ON CONFLICT DO NOTHING turns a lost race into another attempt.
type pgShortCodeRepository struct {
	db DB
}

func NewPGShortCodeRepository(db DB) ShortCodeRepository {
	return &pgShortCodeRepository{db: db}
}

func (r *pgShortCodeRepository) Register(ctx context.Context, proposalID uuid.UUID, title string, groupID uuid.UUID, votingDeadline time.Time) (*models.SMSVotingRegistration, error) {
	if existing, err := r.GetByProposalID(ctx, proposalID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	insert := `
        INSERT INTO sms_voting_proposals
            (proposal_id, short_code, title, group_id, voting_deadline, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (short_code) DO NOTHING
    `
	for attempt := 0; attempt < maxShortCodes; attempt++ {
		var next int
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) + 1 FROM sms_voting_proposals`).Scan(&next)
		if err != nil {
			return nil, err
		}
		candidate := fmt.Sprintf("%03d", (next+attempt-1)%maxShortCodes+1)

		tag, err := r.db.Exec(ctx, insert, proposalID, candidate, title, groupID, votingDeadline)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 1 {
			return r.GetByProposalID(ctx, proposalID)
		}
	}
	return nil, utils.ErrNoShortCodes
}

func (r *pgShortCodeRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.SMSVotingRegistration, error) {
	return r.scanOne(ctx, `WHERE short_code = $1`, shortCode)
}

func (r *pgShortCodeRepository) GetByProposalID(ctx context.Context, proposalID uuid.UUID) (*models.SMSVotingRegistration, error) {
	return r.scanOne(ctx, `WHERE proposal_id = $1`, proposalID)
}

func (r *pgShortCodeRepository) scanOne(ctx context.Context, where string, arg interface{}) (*models.SMSVotingRegistration, error) {
	q := `
        SELECT proposal_id, short_code, title, group_id, voting_deadline, created_at
        FROM sms_voting_proposals ` + where
	var reg models.SMSVotingRegistration
	err := r.db.QueryRow(ctx, q, arg).Scan(
		&reg.ProposalID,
		&reg.ShortCode,
		&reg.Title,
		&reg.GroupID,
		&reg.VotingDeadline,
		&reg.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *pgShortCodeRepository) Close(ctx context.Context, proposalID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sms_voting_proposals WHERE proposal_id = $1`, proposalID)
	return err
}
