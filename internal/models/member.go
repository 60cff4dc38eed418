package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCStatus string

const (
	KYCPending        KYCStatus = "PENDING"
	KYCVerified       KYCStatus = "VERIFIED"
	KYCRejected       KYCStatus = "REJECTED"
	KYCRequiresReview KYCStatus = "REQUIRES_REVIEW"
)

type MemberRole string

const (
	RoleMember    MemberRole = "MEMBER"
	RoleLeader    MemberRole = "LEADER"
	RoleTreasurer MemberRole = "TREASURER"
)

// Member is a registered participant in a savings group.
type Member struct {
	ID            uuid.UUID
	PhoneNumber   string
	FullName      string
	GroupID       uuid.UUID
	Location      string
	Role          MemberRole
	PhoneVerified bool
	KYCStatus     KYCStatus
	CreatedAt     time.Time
	LastActive    *time.Time
}

// Group is a community savings group.
type Group struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Location          string
	LeaderID          uuid.UUID
	MemberCount       int
	TreasuryThreshold int
	KYCStatus         KYCStatus
	CreatedAt         time.Time
}
