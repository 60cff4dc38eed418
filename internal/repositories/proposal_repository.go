package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// ProposalRepository stores proposal metadata, status and the reconciled
// vote count. ResolveVoting performs the VOTING -> PASSED/FAILED
// transition only when the proposal is still in VOTING, so a concurrent
// or repeated deadline sweep is a no-op.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Proposal, error)
	ListByStatus(ctx context.Context, status models.ProposalStatus) ([]models.Proposal, error)
	ListExpiredVoting(ctx context.Context, now time.Time) ([]models.Proposal, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error
	SetVoteCount(ctx context.Context, id uuid.UUID, tally models.Tally) error
	ResolveVoting(ctx context.Context, id uuid.UUID, status models.ProposalStatus, tally models.Tally) (bool, error)
}

type memoryProposalRepository struct {
	mu        sync.Mutex
	proposals map[uuid.UUID]models.Proposal
}

func NewMemoryProposalRepository() ProposalRepository {
	return &memoryProposalRepository{proposals: make(map[uuid.UUID]models.Proposal)}
}

func (r *memoryProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.proposals[proposal.ID] = *proposal
	return nil
}

func (r *memoryProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := proposal
	return &cp, nil
}

func (r *memoryProposalRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var proposals []models.Proposal
	for _, p := range r.proposals {
		if p.GroupID == groupID {
			proposals = append(proposals, p)
		}
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].CreatedAt.After(proposals[j].CreatedAt) })
	return proposals, nil
}

func (r *memoryProposalRepository) ListByStatus(ctx context.Context, status models.ProposalStatus) ([]models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var proposals []models.Proposal
	for _, p := range r.proposals {
		if p.Status == status {
			proposals = append(proposals, p)
		}
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].CreatedAt.After(proposals[j].CreatedAt) })
	return proposals, nil
}

func (r *memoryProposalRepository) ListExpiredVoting(ctx context.Context, now time.Time) ([]models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var proposals []models.Proposal
	for _, p := range r.proposals {
		if p.Status == models.ProposalVoting && now.After(p.VotingDeadline) {
			proposals = append(proposals, p)
		}
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].VotingDeadline.Before(proposals[j].VotingDeadline) })
	return proposals, nil
}

func (r *memoryProposalRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, ok := r.proposals[id]
	if !ok {
		return utils.ErrNotFound
	}
	proposal.Status = status
	r.proposals[id] = proposal
	return nil
}

func (r *memoryProposalRepository) SetVoteCount(ctx context.Context, id uuid.UUID, tally models.Tally) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, ok := r.proposals[id]
	if !ok {
		return utils.ErrNotFound
	}
	proposal.VoteCount = tally
	r.proposals[id] = proposal
	return nil
}

func (r *memoryProposalRepository) ResolveVoting(ctx context.Context, id uuid.UUID, status models.ProposalStatus, tally models.Tally) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, ok := r.proposals[id]
	if !ok {
		return false, utils.ErrNotFound
	}
	if proposal.Status != models.ProposalVoting {
		return false, nil
	}
	proposal.Status = status
	proposal.VoteCount = tally
	r.proposals[id] = proposal
	return true, nil
}
