package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// KYCService manages identity documents and member KYC standing.
// Community attestations are trusted at face value and verified on
// submission; government IDs stay pending until a reviewer signs off.
type KYCService interface {
	SubmitDocument(ctx context.Context, req *dtos.SubmitKYCDocumentRequest) (*dtos.KYCDocumentResponse, error)
	ListMemberDocuments(ctx context.Context, memberID uuid.UUID) ([]dtos.KYCDocumentResponse, error)
	Review(ctx context.Context, req *dtos.KYCReviewRequest) (*dtos.KYCReviewResponse, error)
	ListMemberReviews(ctx context.Context, memberID uuid.UUID) ([]dtos.KYCReviewResponse, error)
	// AutoElevate promotes a member to VERIFIED KYC when their phone is
	// verified and they hold an accepted document. Returns true if the
	// member's status changed.
	AutoElevate(ctx context.Context, memberID uuid.UUID) (bool, error)
}

type kycService struct {
	kycRepo    repositories.KYCRepository
	memberRepo repositories.MemberRepository
}

func NewKYCService(kycRepo repositories.KYCRepository, memberRepo repositories.MemberRepository) KYCService {
	return &kycService{kycRepo: kycRepo, memberRepo: memberRepo}
}

func (s *kycService) SubmitDocument(ctx context.Context, req *dtos.SubmitKYCDocumentRequest) (*dtos.KYCDocumentResponse, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, utils.ErrNotFound
	}

	now := time.Now()
	doc := &models.KYCDocument{
		ID:                 uuid.New(),
		MemberID:           req.MemberID,
		DocumentType:       models.KYCDocumentType(req.DocumentType),
		DocumentNumber:     req.DocumentNumber,
		IssuingAuthority:   req.IssuingAuthority,
		ExpiryDate:         req.ExpiryDate,
		VerificationStatus: models.VerificationStatusPending,
		CreatedAt:          now,
	}

	if doc.DocumentType == models.DocCommunityAttestation {
		doc.VerificationStatus = models.VerificationStatusVerified
		doc.VerifiedAt = &now
	}

	if err := s.kycRepo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	utils.Logger.Infof("KYC document %s (%s) submitted for member %s", doc.ID, doc.DocumentType, doc.MemberID)

	if doc.DocumentType == models.DocCommunityAttestation {
		if _, err := s.AutoElevate(ctx, req.MemberID); err != nil {
			utils.Logger.WithError(err).Warnf("Auto KYC elevation failed for member %s", req.MemberID)
		}
	}

	return documentToResponse(doc), nil
}

func (s *kycService) ListMemberDocuments(ctx context.Context, memberID uuid.UUID) ([]dtos.KYCDocumentResponse, error) {
	docs, err := s.kycRepo.ListMemberDocuments(ctx, memberID)
	if err != nil {
		return nil, err
	}

	resp := make([]dtos.KYCDocumentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, *documentToResponse(&docs[i]))
	}
	return resp, nil
}

func (s *kycService) Review(ctx context.Context, req *dtos.KYCReviewRequest) (*dtos.KYCReviewResponse, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, utils.ErrNotFound
	}

	newStatus := models.KYCStatus(req.Status)
	review := &models.KYCReview{
		MemberID:       req.MemberID,
		PreviousStatus: member.KYCStatus,
		NewStatus:      newStatus,
		ReviewerNotes:  req.ReviewerNotes,
		ReviewedAt:     time.Now(),
	}

	if err := s.memberRepo.UpdateKYCStatus(ctx, req.MemberID, newStatus); err != nil {
		return nil, err
	}
	if err := s.kycRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	// An approving review also accepts the member's pending documents.
	if newStatus == models.KYCVerified {
		s.verifyPendingDocuments(ctx, req.MemberID)
	}

	utils.Logger.Infof("KYC status for member %s changed %s -> %s", req.MemberID, review.PreviousStatus, newStatus)
	return reviewToResponse(review), nil
}

func (s *kycService) verifyPendingDocuments(ctx context.Context, memberID uuid.UUID) {
	docs, err := s.kycRepo.ListMemberDocuments(ctx, memberID)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to list documents for member %s", memberID)
		return
	}
	now := time.Now()
	for _, doc := range docs {
		if doc.VerificationStatus != models.VerificationStatusPending {
			continue
		}
		if err := s.kycRepo.SetDocumentStatus(ctx, doc.ID, models.VerificationStatusVerified, &now); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to verify document %s", doc.ID)
		}
	}
}

func (s *kycService) ListMemberReviews(ctx context.Context, memberID uuid.UUID) ([]dtos.KYCReviewResponse, error) {
	reviews, err := s.kycRepo.ListMemberReviews(ctx, memberID)
	if err != nil {
		return nil, err
	}

	resp := make([]dtos.KYCReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, *reviewToResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *kycService) AutoElevate(ctx context.Context, memberID uuid.UUID) (bool, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, utils.ErrNotFound
	}
	if member.KYCStatus == models.KYCVerified || !member.PhoneVerified {
		return false, nil
	}

	docs, err := s.kycRepo.ListMemberDocuments(ctx, memberID)
	if err != nil {
		return false, err
	}

	var notes string
	for _, doc := range docs {
		if doc.VerificationStatus != models.VerificationStatusVerified {
			continue
		}
		if doc.DocumentType.IsGovernmentID() {
			notes = "Auto-approved with verified government ID"
			break
		}
		notes = "Auto-approved with community attestation"
	}
	if notes == "" {
		return false, nil
	}

	review := &models.KYCReview{
		MemberID:       memberID,
		PreviousStatus: member.KYCStatus,
		NewStatus:      models.KYCVerified,
		ReviewerNotes:  notes,
		ReviewedAt:     time.Now(),
	}
	if err := s.memberRepo.UpdateKYCStatus(ctx, memberID, models.KYCVerified); err != nil {
		return false, err
	}
	if err := s.kycRepo.CreateReview(ctx, review); err != nil {
		return false, err
	}

	utils.Logger.Infof("Member %s auto-elevated to VERIFIED KYC: %s", memberID, notes)
	return true, nil
}

func documentToResponse(doc *models.KYCDocument) *dtos.KYCDocumentResponse {
	return &dtos.KYCDocumentResponse{
		DocumentID:         doc.ID,
		MemberID:           doc.MemberID,
		DocumentType:       string(doc.DocumentType),
		DocumentNumber:     doc.DocumentNumber,
		IssuingAuthority:   doc.IssuingAuthority,
		ExpiryDate:         doc.ExpiryDate,
		VerificationStatus: string(doc.VerificationStatus),
		CreatedAt:          doc.CreatedAt,
		VerifiedAt:         doc.VerifiedAt,
	}
}

func reviewToResponse(review *models.KYCReview) *dtos.KYCReviewResponse {
	return &dtos.KYCReviewResponse{
		MemberID:       review.MemberID,
		PreviousStatus: string(review.PreviousStatus),
		NewStatus:      string(review.NewStatus),
		ReviewerNotes:  review.ReviewerNotes,
		ReviewedAt:     review.ReviewedAt,
	}
}
