package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
)

// ----------------------
// Proposals
// ----------------------

type CreateProposalRequest struct {
	GroupID              uuid.UUID `json:"group_id" validate:"required"`
	Title                string    `json:"title" validate:"required,min=3,max=200"`
	Description          string    `json:"description" validate:"max=2000"`
	AmountRequested      float64   `json:"amount_requested" validate:"min=0"`
	MilestoneDescription string    `json:"milestone_description" validate:"max=1000"`
	Deadline             time.Time `json:"deadline"`
	CreatedBy            uuid.UUID `json:"created_by" validate:"required"`
}

type ProposalResponse struct {
	ProposalID           uuid.UUID    `json:"proposal_id"`
	GroupID              uuid.UUID    `json:"group_id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	AmountRequested      float64      `json:"amount_requested"`
	MilestoneDescription string       `json:"milestone_description"`
	CreatedBy            uuid.UUID    `json:"created_by"`
	CreatedAt            time.Time    `json:"created_at"`
	VotingDeadline       time.Time    `json:"voting_deadline"`
	Status               string       `json:"status"`
	VoteCount            models.Tally `json:"vote_count"`
}

// ----------------------
// SMS voting
// ----------------------

type BroadcastResult struct {
	SentCount       int `json:"sent_count"`
	FailedCount     int `json:"failed_count"`
	TotalRecipients int `json:"total_recipients"`
}

type StartSMSVotingResponse struct {
	ProposalID     uuid.UUID       `json:"proposal_id"`
	ShortCode      string          `json:"short_code"`
	EligibleVoters int             `json:"eligible_voters"`
	Broadcast      BroadcastResult `json:"broadcast_result"`
}

type VotingStatusResponse struct {
	ProposalID     uuid.UUID    `json:"proposal_id"`
	ShortCode      string       `json:"short_code"`
	Title          string       `json:"title"`
	VotingDeadline time.Time    `json:"voting_deadline"`
	IsActive       bool         `json:"is_active"`
	VoteTally      models.Tally `json:"vote_tally"`
}

type VotingHistoryEntry struct {
	Proposal ProposalResponse `json:"proposal"`
	Vote     bool             `json:"vote"`
	VotedAt  time.Time        `json:"voted_at"`
}
