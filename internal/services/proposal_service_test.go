package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
)

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	groupID := f.seedGroup(ctx)

	t.Run("OpensInVotingWithGivenDeadline", func(t *testing.T) {
		deadline := time.Now().Add(48 * time.Hour)
		resp, err := f.proposals.Create(ctx, &dtos.CreateProposalRequest{
			GroupID:   groupID,
			Title:     "Repair the water pump",
			CreatedBy: uuid.New(),
			Deadline:  deadline,
		})
		require.NoError(t, err)
		require.Equal(t, string(models.ProposalVoting), resp.Status)
		require.WithinDuration(t, deadline, resp.VotingDeadline, time.Second)
	})

	t.Run("PastDeadlineFallsBackToDefaultPeriod", func(t *testing.T) {
		resp, err := f.proposals.Create(ctx, &dtos.CreateProposalRequest{
			GroupID:   groupID,
			Title:     "Buy fertilizer",
			CreatedBy: uuid.New(),
			Deadline:  time.Now().Add(-time.Hour),
		})
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(f.cfg.DefaultVotingPeriod), resp.VotingDeadline, time.Minute)
	})
}

func TestCheckVotingDeadlines(t *testing.T) {
	ctx := context.Background()

	// castVotes inserts yes/no votes directly into the ledger.
	castVotes := func(t *testing.T, f *fixture, proposalID uuid.UUID, yes, no int) {
		t.Helper()
		for i := 0; i < yes; i++ {
			_, err := f.votes.RecordVote(ctx, uuid.New(), proposalID, true)
			require.NoError(t, err)
		}
		for i := 0; i < no; i++ {
			_, err := f.votes.RecordVote(ctx, uuid.New(), proposalID, false)
			require.NoError(t, err)
		}
	}

	resolve := func(t *testing.T, yes, no int) *models.Proposal {
		t.Helper()
		f := newFixture()
		groupID := f.seedGroup(ctx)
		proposal := f.seedProposal(ctx, groupID, time.Now().Add(-time.Minute))
		castVotes(t, f, proposal.ID, yes, no)

		resolved, err := f.proposals.CheckVotingDeadlines(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, resolved)

		updated, err := f.proposalRepo.GetByID(ctx, proposal.ID)
		require.NoError(t, err)
		return updated
	}

	t.Run("MajorityYesPasses", func(t *testing.T) {
		updated := resolve(t, 6, 4)
		require.Equal(t, models.ProposalPassed, updated.Status)
		require.Equal(t, models.Tally{Yes: 6, No: 4, Total: 10}, updated.VoteCount)
	})

	t.Run("TieFails", func(t *testing.T) {
		updated := resolve(t, 5, 5)
		require.Equal(t, models.ProposalFailed, updated.Status)
	})

	t.Run("NoVotesFails", func(t *testing.T) {
		updated := resolve(t, 0, 0)
		require.Equal(t, models.ProposalFailed, updated.Status)
	})

	t.Run("SweepIsIdempotentAndReleasesShortCode", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		f.seedMember(ctx, groupID, "+254700000001", true)
		proposal := f.seedProposal(ctx, groupID, time.Now().Add(time.Hour))

		start, err := f.smsVoting.StartVoting(ctx, proposal.ID)
		require.NoError(t, err)

		// Force the deadline into the past and sweep twice.
		require.NoError(t, f.proposalRepo.Create(ctx, &models.Proposal{
			ID:             proposal.ID,
			GroupID:        groupID,
			Title:          proposal.Title,
			VotingDeadline: time.Now().Add(-time.Minute),
			Status:         models.ProposalVoting,
			CreatedAt:      proposal.CreatedAt,
		}))

		resolved, err := f.proposals.CheckVotingDeadlines(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, resolved)

		resolved, err = f.proposals.CheckVotingDeadlines(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, resolved)

		// The code is free for reuse once voting is resolved.
		reg, err := f.shortCodeRepo.GetByShortCode(ctx, start.ShortCode)
		require.NoError(t, err)
		require.Nil(t, reg)
	})

	t.Run("UnexpiredVotingIsLeftAlone", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		proposal := f.seedProposal(ctx, groupID, time.Now().Add(time.Hour))

		resolved, err := f.proposals.CheckVotingDeadlines(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, resolved)

		updated, err := f.proposalRepo.GetByID(ctx, proposal.ID)
		require.NoError(t, err)
		require.Equal(t, models.ProposalVoting, updated.Status)
	})
}

func TestVotingHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	groupID := f.seedGroup(ctx)
	memberID := uuid.New()

	first := f.seedProposal(ctx, groupID, time.Now().Add(time.Hour))
	second := f.seedProposal(ctx, groupID, time.Now().Add(time.Hour))

	_, err := f.votes.RecordVote(ctx, memberID, first.ID, true)
	require.NoError(t, err)
	_, err = f.votes.RecordVote(ctx, memberID, second.ID, false)
	require.NoError(t, err)

	history, err := f.votes.GetVotingHistory(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, entry := range history {
		switch entry.Proposal.ProposalID {
		case first.ID:
			require.True(t, entry.Vote)
		case second.ID:
			require.False(t, entry.Vote)
		default:
			t.Fatalf("unexpected proposal %s in history", entry.Proposal.ProposalID)
		}
	}
}
