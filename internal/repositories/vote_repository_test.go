package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

func TestMemoryVoteRepositoryInsertVote(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVoteRepository()
	memberID := uuid.New()
	proposalID := uuid.New()

	require.NoError(t, repo.InsertVote(ctx, &models.Vote{MemberID: memberID, ProposalID: proposalID, Choice: true}))

	// A second submission for the same pair is rejected, even with the
	// opposite choice.
	err := repo.InsertVote(ctx, &models.Vote{MemberID: memberID, ProposalID: proposalID, Choice: false})
	require.ErrorIs(t, err, utils.ErrAlreadyVoted)

	tally, err := repo.GetTally(ctx, proposalID)
	require.NoError(t, err)
	require.Equal(t, models.Tally{Yes: 1, No: 0, Total: 1}, tally)
}

func TestMemoryVoteRepositoryConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVoteRepository()
	memberID := uuid.New()
	proposalID := uuid.New()

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(choice bool) {
			defer wg.Done()
			errs <- repo.InsertVote(ctx, &models.Vote{MemberID: memberID, ProposalID: proposalID, Choice: choice})
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case err == utils.ErrAlreadyVoted:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, duplicates)

	tally, err := repo.GetTally(ctx, proposalID)
	require.NoError(t, err)
	require.Equal(t, 1, tally.Total)
}

func TestMemoryVoteRepositoryTally(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVoteRepository()
	proposalID := uuid.New()

	for i := 0; i < 6; i++ {
		require.NoError(t, repo.InsertVote(ctx, &models.Vote{MemberID: uuid.New(), ProposalID: proposalID, Choice: true}))
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.InsertVote(ctx, &models.Vote{MemberID: uuid.New(), ProposalID: proposalID, Choice: false}))
	}
	// Votes on another proposal never bleed into the tally.
	require.NoError(t, repo.InsertVote(ctx, &models.Vote{MemberID: uuid.New(), ProposalID: uuid.New(), Choice: true}))

	tally, err := repo.GetTally(ctx, proposalID)
	require.NoError(t, err)
	require.Equal(t, models.Tally{Yes: 6, No: 4, Total: 10}, tally)
	require.True(t, tally.Passed())
}
