package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

type pgProposalRepository struct {
	db DB
}

func NewPGProposalRepository(db DB) ProposalRepository {
	return &pgProposalRepository{db: db}
}

func (r *pgProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	q := `
        INSERT INTO proposals
            (id, group_id, title, description, amount_requested, milestone_description,
             created_by, created_at, voting_deadline, status, yes_votes, no_votes, total_votes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.db.Exec(ctx, q,
		proposal.ID, proposal.GroupID, proposal.Title, proposal.Description,
		proposal.AmountRequested, proposal.MilestoneDescription, proposal.CreatedBy,
		proposal.CreatedAt, proposal.VotingDeadline, proposal.Status,
		proposal.VoteCount.Yes, proposal.VoteCount.No, proposal.VoteCount.Total,
	)
	return err
}

const baseSelectProposal = `
    SELECT id, group_id, title, description, amount_requested, milestone_description,
           created_by, created_at, voting_deadline, status, yes_votes, no_votes, total_votes
    FROM proposals
`

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var p models.Proposal
	err := row.Scan(
		&p.ID, &p.GroupID, &p.Title, &p.Description, &p.AmountRequested,
		&p.MilestoneDescription, &p.CreatedBy, &p.CreatedAt, &p.VotingDeadline,
		&p.Status, &p.VoteCount.Yes, &p.VoteCount.No, &p.VoteCount.Total,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	return scanProposal(r.db.QueryRow(ctx, baseSelectProposal+` WHERE id = $1`, id))
}

func (r *pgProposalRepository) list(ctx context.Context, suffix string, args ...interface{}) ([]models.Proposal, error) {
	rows, err := r.db.Query(ctx, baseSelectProposal+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(
			&p.ID, &p.GroupID, &p.Title, &p.Description, &p.AmountRequested,
			&p.MilestoneDescription, &p.CreatedBy, &p.CreatedAt, &p.VotingDeadline,
			&p.Status, &p.VoteCount.Yes, &p.VoteCount.No, &p.VoteCount.Total,
		); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *pgProposalRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Proposal, error) {
	return r.list(ctx, ` WHERE group_id = $1 ORDER BY created_at DESC`, groupID)
}

func (r *pgProposalRepository) ListByStatus(ctx context.Context, status models.ProposalStatus) ([]models.Proposal, error) {
	return r.list(ctx, ` WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *pgProposalRepository) ListExpiredVoting(ctx context.Context, now time.Time) ([]models.Proposal, error) {
	return r.list(ctx, ` WHERE status = $1 AND voting_deadline < $2 ORDER BY voting_deadline`, models.ProposalVoting, now)
}

func (r *pgProposalRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE proposals SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *pgProposalRepository) SetVoteCount(ctx context.Context, id uuid.UUID, tally models.Tally) error {
	q := `UPDATE proposals SET yes_votes = $2, no_votes = $3, total_votes = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, tally.Yes, tally.No, tally.Total)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *pgProposalRepository) ResolveVoting(ctx context.Context, id uuid.UUID, status models.ProposalStatus, tally models.Tally) (bool, error) {
	q := `
        UPDATE proposals
        SET status = $2, yes_votes = $3, no_votes = $4, total_votes = $5
        WHERE id = $1 AND status = $6
    `
	tag, err := r.db.Exec(ctx, q, id, status, tally.Yes, tally.No, tally.Total, models.ProposalVoting)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
