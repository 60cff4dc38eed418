package dtos

import (
	"time"

	"github.com/google/uuid"
)

type SubmitKYCDocumentRequest struct {
	MemberID         uuid.UUID  `json:"member_id" validate:"required"`
	DocumentType     string     `json:"document_type" validate:"required,oneof=NATIONAL_ID PASSPORT DRIVERS_LICENSE VOTER_ID COMMUNITY_ATTESTATION"`
	DocumentNumber   string     `json:"document_number" validate:"required"`
	IssuingAuthority string     `json:"issuing_authority"`
	ExpiryDate       *time.Time `json:"expiry_date"`
}

type KYCDocumentResponse struct {
	DocumentID         uuid.UUID  `json:"document_id"`
	MemberID           uuid.UUID  `json:"member_id"`
	DocumentType       string     `json:"document_type"`
	DocumentNumber     string     `json:"document_number"`
	IssuingAuthority   string     `json:"issuing_authority"`
	ExpiryDate         *time.Time `json:"expiry_date"`
	VerificationStatus string     `json:"verification_status"`
	CreatedAt          time.Time  `json:"created_at"`
	VerifiedAt         *time.Time `json:"verified_at"`
}

type KYCReviewRequest struct {
	MemberID      uuid.UUID `json:"member_id" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=PENDING VERIFIED REJECTED REQUIRES_REVIEW"`
	ReviewerNotes string    `json:"reviewer_notes" validate:"max=1000"`
}

type KYCReviewResponse struct {
	MemberID       uuid.UUID `json:"member_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ReviewerNotes  string    `json:"reviewer_notes"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
