package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// pgVoteRepository relies on the primary key (member_id, proposal_id) so
// duplicate submissions lose the insert race inside Postgres itself.
type pgVoteRepository struct {
	db DB
}

func NewPGVoteRepository(db DB) VoteRepository {
	return &pgVoteRepository{db: db}
}

func (r *pgVoteRepository) InsertVote(ctx context.Context, vote *models.Vote) error {
	q := `
        INSERT INTO votes (member_id, proposal_id, choice, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (member_id, proposal_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, q, vote.MemberID, vote.ProposalID, vote.Choice)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrAlreadyVoted
	}
	return nil
}

func (r *pgVoteRepository) GetTally(ctx context.Context, proposalID uuid.UUID) (models.Tally, error) {
	q := `
        SELECT
            COUNT(*) FILTER (WHERE choice),
            COUNT(*) FILTER (WHERE NOT choice),
            COUNT(*)
        FROM votes
        WHERE proposal_id = $1
    `
	var tally models.Tally
	err := r.db.QueryRow(ctx, q, proposalID).Scan(&tally.Yes, &tally.No, &tally.Total)
	if err != nil {
		return models.Tally{}, err
	}
	return tally, nil
}

func (r *pgVoteRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Vote, error) {
	q := `
        SELECT member_id, proposal_id, choice, created_at
        FROM votes
        WHERE member_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.MemberID, &v.ProposalID, &v.Choice, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
