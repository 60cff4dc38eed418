package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------
// Groups
// ----------------------

type CreateGroupRequest struct {
	GroupName         string `json:"group_name" validate:"required,min=3,max=100"`
	Description       string `json:"description" validate:"max=500"`
	Location          string `json:"location" validate:"required"`
	LeaderName        string `json:"leader_name" validate:"required"`
	LeaderPhone       string `json:"leader_phone" validate:"required,e164"`
	TreasuryThreshold int    `json:"treasury_threshold" validate:"min=1"`
}

type GroupResponse struct {
	GroupID           uuid.UUID `json:"group_id"`
	GroupName         string    `json:"group_name"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	LeaderID          uuid.UUID `json:"leader_id"`
	MemberCount       int       `json:"member_count"`
	TreasuryThreshold int       `json:"treasury_threshold"`
	KYCStatus         string    `json:"kyc_status"`
	CreatedAt         time.Time `json:"created_at"`
}

// ----------------------
// Members
// ----------------------

type RegisterMemberRequest struct {
	PhoneNumber string    `json:"phone_number" validate:"required,e164"`
	FullName    string    `json:"full_name" validate:"required"`
	GroupID     uuid.UUID `json:"group_id" validate:"required"`
	Location    string    `json:"location"`
	Role        string    `json:"role" validate:"omitempty,oneof=MEMBER LEADER TREASURER"`
}

type MemberResponse struct {
	MemberID      uuid.UUID  `json:"member_id"`
	PhoneNumber   string     `json:"phone_number"`
	FullName      string     `json:"full_name"`
	GroupID       uuid.UUID  `json:"group_id"`
	Location      string     `json:"location"`
	Role          string     `json:"role"`
	PhoneVerified bool       `json:"phone_verified"`
	KYCStatus     string     `json:"kyc_status"`
	CreatedAt     time.Time  `json:"created_at"`
	LastActive    *time.Time `json:"last_active"`
}

type MemberListResponse struct {
	GroupID uuid.UUID        `json:"group_id"`
	Members []MemberResponse `json:"members"`
	Count   int              `json:"count"`
}
