package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCDocumentType string

const (
	DocNationalID           KYCDocumentType = "NATIONAL_ID"
	DocPassport             KYCDocumentType = "PASSPORT"
	DocDriversLicense       KYCDocumentType = "DRIVERS_LICENSE"
	DocVoterID              KYCDocumentType = "VOTER_ID"
	DocCommunityAttestation KYCDocumentType = "COMMUNITY_ATTESTATION"
)

// IsGovernmentID reports whether the document type is an official
// identity document (as opposed to a community attestation).
func (t KYCDocumentType) IsGovernmentID() bool {
	switch t {
	case DocNationalID, DocPassport, DocDriversLicense, DocVoterID:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	VerificationStatusFailed   VerificationStatus = "FAILED"
)

// KYCDocument is a submitted identity document awaiting or past review.
type KYCDocument struct {
	ID                 uuid.UUID
	MemberID           uuid.UUID
	DocumentType       KYCDocumentType
	DocumentNumber     string
	IssuingAuthority   string
	ExpiryDate         *time.Time
	VerificationStatus VerificationStatus
	CreatedAt          time.Time
	VerifiedAt         *time.Time
}

// KYCReview records one reviewer decision on a member's KYC standing.
type KYCReview struct {
	MemberID       uuid.UUID
	PreviousStatus KYCStatus
	NewStatus      KYCStatus
	ReviewerNotes  string
	ReviewedAt     time.Time
}
