package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryShortCodeRepository(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(24 * time.Hour)

	t.Run("AllocatesDistinctZeroPaddedCodes", func(t *testing.T) {
		repo := NewMemoryShortCodeRepository()
		seen := make(map[string]bool)

		for i := 0; i < 20; i++ {
			reg, err := repo.Register(ctx, uuid.New(), "proposal", uuid.New(), deadline)
			require.NoError(t, err)
			require.Len(t, reg.ShortCode, 3)
			require.False(t, seen[reg.ShortCode], "code %s handed out twice", reg.ShortCode)
			seen[reg.ShortCode] = true
		}
		require.True(t, seen["001"])
	})

	t.Run("RegisterIsIdempotentPerProposal", func(t *testing.T) {
		repo := NewMemoryShortCodeRepository()
		proposalID := uuid.New()

		first, err := repo.Register(ctx, proposalID, "proposal", uuid.New(), deadline)
		require.NoError(t, err)
		second, err := repo.Register(ctx, proposalID, "proposal", uuid.New(), deadline)
		require.NoError(t, err)
		require.Equal(t, first.ShortCode, second.ShortCode)
	})

	t.Run("LookupByCodeAndProposal", func(t *testing.T) {
		repo := NewMemoryShortCodeRepository()
		proposalID := uuid.New()

		reg, err := repo.Register(ctx, proposalID, "proposal", uuid.New(), deadline)
		require.NoError(t, err)

		byCode, err := repo.GetByShortCode(ctx, reg.ShortCode)
		require.NoError(t, err)
		require.Equal(t, proposalID, byCode.ProposalID)

		byProposal, err := repo.GetByProposalID(ctx, proposalID)
		require.NoError(t, err)
		require.Equal(t, reg.ShortCode, byProposal.ShortCode)

		missing, err := repo.GetByShortCode(ctx, "999")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("ClosedCodeBecomesReusable", func(t *testing.T) {
		repo := NewMemoryShortCodeRepository()
		first, err := repo.Register(ctx, uuid.New(), "proposal", uuid.New(), deadline)
		require.NoError(t, err)

		require.NoError(t, repo.Close(ctx, first.ProposalID))

		lookup, err := repo.GetByShortCode(ctx, first.ShortCode)
		require.NoError(t, err)
		require.Nil(t, lookup)

		// Walk the allocator around the whole space; the freed code must
		// come back eventually.
		reused := false
		for i := 0; i < maxShortCodes; i++ {
			reg, err := repo.Register(ctx, uuid.New(), "proposal", uuid.New(), deadline)
			require.NoError(t, err)
			if reg.ShortCode == first.ShortCode {
				reused = true
				break
			}
		}
		require.True(t, reused)
	})

	t.Run("ClosingUnknownProposalIsANoOp", func(t *testing.T) {
		repo := NewMemoryShortCodeRepository()
		require.NoError(t, repo.Close(ctx, uuid.New()))
	})
}
