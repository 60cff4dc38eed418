package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// VoteRepository is the permanent ledger of cast votes. InsertVote is an
// atomic insert-if-absent on (member, proposal): under concurrent
// duplicate submissions exactly one call succeeds and the rest fail with
// utils.ErrAlreadyVoted.
type VoteRepository interface {
	InsertVote(ctx context.Context, vote *models.Vote) error
	GetTally(ctx context.Context, proposalID uuid.UUID) (models.Tally, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Vote, error)
}

type voteKey struct {
	memberID   uuid.UUID
	proposalID uuid.UUID
}

type memoryVoteRepository struct {
	mu    sync.Mutex
	votes map[voteKey]models.Vote
}

func NewMemoryVoteRepository() VoteRepository {
	return &memoryVoteRepository{votes: make(map[voteKey]models.Vote)}
}

func (r *memoryVoteRepository) InsertVote(ctx context.Context, vote *models.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := voteKey{memberID: vote.MemberID, proposalID: vote.ProposalID}
	if _, ok := r.votes[key]; ok {
		return utils.ErrAlreadyVoted
	}
	rec := *vote
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.votes[key] = rec
	return nil
}

func (r *memoryVoteRepository) GetTally(ctx context.Context, proposalID uuid.UUID) (models.Tally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tally models.Tally
	for key, vote := range r.votes {
		if key.proposalID != proposalID {
			continue
		}
		tally.Total++
		if vote.Choice {
			tally.Yes++
		} else {
			tally.No++
		}
	}
	return tally, nil
}

func (r *memoryVoteRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var votes []models.Vote
	for key, vote := range r.votes {
		if key.memberID == memberID {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}
