package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
)

func TestKYCAutoElevation(t *testing.T) {
	ctx := context.Background()

	t.Run("AttestationAloneIsNotEnoughWithoutVerifiedPhone", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		member := f.seedMember(ctx, groupID, "+254700000001", false)

		_, err := f.kyc.SubmitDocument(ctx, &dtos.SubmitKYCDocumentRequest{
			MemberID:       member.ID,
			DocumentType:   string(models.DocCommunityAttestation),
			DocumentNumber: "chief-attestation-1",
		})
		require.NoError(t, err)

		updated, err := f.memberRepo.GetMemberByID(ctx, member.ID)
		require.NoError(t, err)
		require.Equal(t, models.KYCPending, updated.KYCStatus)
	})

	t.Run("AttestationPlusVerifiedPhoneElevates", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		member := f.seedMember(ctx, groupID, "+254700000001", true)

		_, err := f.kyc.SubmitDocument(ctx, &dtos.SubmitKYCDocumentRequest{
			MemberID:       member.ID,
			DocumentType:   string(models.DocCommunityAttestation),
			DocumentNumber: "chief-attestation-1",
		})
		require.NoError(t, err)

		updated, err := f.memberRepo.GetMemberByID(ctx, member.ID)
		require.NoError(t, err)
		require.Equal(t, models.KYCVerified, updated.KYCStatus)

		reviews, err := f.kyc.ListMemberReviews(ctx, member.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		require.Equal(t, "Auto-approved with community attestation", reviews[0].ReviewerNotes)
	})

	t.Run("PendingGovernmentIDDoesNotElevate", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		member := f.seedMember(ctx, groupID, "+254700000001", true)

		_, err := f.kyc.SubmitDocument(ctx, &dtos.SubmitKYCDocumentRequest{
			MemberID:       member.ID,
			DocumentType:   string(models.DocNationalID),
			DocumentNumber: "12345678",
		})
		require.NoError(t, err)

		changed, err := f.kyc.AutoElevate(ctx, member.ID)
		require.NoError(t, err)
		require.False(t, changed)
	})

	t.Run("VerifiedGovernmentIDElevates", func(t *testing.T) {
		f := newFixture()
		groupID := f.seedGroup(ctx)
		member := f.seedMember(ctx, groupID, "+254700000001", true)

		doc, err := f.kyc.SubmitDocument(ctx, &dtos.SubmitKYCDocumentRequest{
			MemberID:       member.ID,
			DocumentType:   string(models.DocNationalID),
			DocumentNumber: "12345678",
		})
		require.NoError(t, err)

		now := doc.CreatedAt
		require.NoError(t, f.kycRepo.SetDocumentStatus(ctx, doc.DocumentID, models.VerificationStatusVerified, &now))

		changed, err := f.kyc.AutoElevate(ctx, member.ID)
		require.NoError(t, err)
		require.True(t, changed)

		reviews, err := f.kyc.ListMemberReviews(ctx, member.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		require.Equal(t, "Auto-approved with verified government ID", reviews[0].ReviewerNotes)
	})
}

func TestKYCReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	groupID := f.seedGroup(ctx)
	member := f.seedMember(ctx, groupID, "+254700000001", true)

	doc, err := f.kyc.SubmitDocument(ctx, &dtos.SubmitKYCDocumentRequest{
		MemberID:       member.ID,
		DocumentType:   string(models.DocPassport),
		DocumentNumber: "A1234567",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.VerificationStatusPending), doc.VerificationStatus)

	resp, err := f.kyc.Review(ctx, &dtos.KYCReviewRequest{
		MemberID:      member.ID,
		Status:        string(models.KYCVerified),
		ReviewerNotes: "Passport checked against registry",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.KYCPending), resp.PreviousStatus)
	require.Equal(t, string(models.KYCVerified), resp.NewStatus)

	// The approving review also accepts the pending document.
	docs, err := f.kyc.ListMemberDocuments(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, string(models.VerificationStatusVerified), docs[0].VerificationStatus)
	require.NotNil(t, docs[0].VerifiedAt)
}
