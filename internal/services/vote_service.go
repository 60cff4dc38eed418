package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// VoteService records votes into the permanent ledger and derives tallies
// from it. The reconciled count mirrored onto the proposal row is advisory;
// the vote set is the source of truth.
type VoteService interface {
	// RecordVote stores the member's choice and returns the tally after
	// the insert. A duplicate submission fails with utils.ErrAlreadyVoted.
	RecordVote(ctx context.Context, memberID, proposalID uuid.UUID, choice bool) (models.Tally, error)
	GetTally(ctx context.Context, proposalID uuid.UUID) (models.Tally, error)
	GetVotingHistory(ctx context.Context, memberID uuid.UUID) ([]dtos.VotingHistoryEntry, error)
}

type voteService struct {
	voteRepo     repositories.VoteRepository
	proposalRepo repositories.ProposalRepository
}

func NewVoteService(voteRepo repositories.VoteRepository, proposalRepo repositories.ProposalRepository) VoteService {
	return &voteService{voteRepo: voteRepo, proposalRepo: proposalRepo}
}

func (s *voteService) RecordVote(ctx context.Context, memberID, proposalID uuid.UUID, choice bool) (models.Tally, error) {
	vote := &models.Vote{
		MemberID:   memberID,
		ProposalID: proposalID,
		Choice:     choice,
		CreatedAt:  time.Now(),
	}
	if err := s.voteRepo.InsertVote(ctx, vote); err != nil {
		return models.Tally{}, err
	}

	tally, err := s.voteRepo.GetTally(ctx, proposalID)
	if err != nil {
		return models.Tally{}, err
	}

	// Mirror the recomputed count onto the proposal row for read paths.
	if err := s.proposalRepo.SetVoteCount(ctx, proposalID, tally); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to update vote count on proposal %s", proposalID)
	}

	utils.Logger.Infof("Vote recorded for proposal %s by member %s (tally %d/%d)",
		proposalID, memberID, tally.Yes, tally.Total)
	return tally, nil
}

func (s *voteService) GetTally(ctx context.Context, proposalID uuid.UUID) (models.Tally, error) {
	return s.voteRepo.GetTally(ctx, proposalID)
}

func (s *voteService) GetVotingHistory(ctx context.Context, memberID uuid.UUID) ([]dtos.VotingHistoryEntry, error) {
	votes, err := s.voteRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].CreatedAt.After(votes[j].CreatedAt) })

	entries := make([]dtos.VotingHistoryEntry, 0, len(votes))
	for _, vote := range votes {
		proposal, err := s.proposalRepo.GetByID(ctx, vote.ProposalID)
		if err != nil {
			return nil, err
		}
		if proposal == nil {
			utils.Logger.Warnf("Vote references missing proposal %s", vote.ProposalID)
			continue
		}
		entries = append(entries, dtos.VotingHistoryEntry{
			Proposal: *proposalToResponse(proposal),
			Vote:     vote.Choice,
			VotedAt:  vote.CreatedAt,
		})
	}
	return entries, nil
}
