package models

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "DRAFT"
	ProposalVoting   ProposalStatus = "VOTING"
	ProposalPassed   ProposalStatus = "PASSED"
	ProposalFailed   ProposalStatus = "FAILED"
	ProposalExecuted ProposalStatus = "EXECUTED"
)

// Tally is the aggregate yes/no count for a proposal, always recomputed
// from the underlying vote set rather than mutated incrementally.
type Tally struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Total int `json:"total"`
}

// Passed applies the strict-majority rule over votes cast. Ties fail,
// and a proposal with no votes fails.
func (t Tally) Passed() bool {
	return t.Total > 0 && 2*t.Yes > t.Total
}

// Proposal is a group funding proposal put to a vote.
type Proposal struct {
	ID                   uuid.UUID
	GroupID              uuid.UUID
	Title                string
	Description          string
	AmountRequested      float64
	MilestoneDescription string
	CreatedBy            uuid.UUID
	CreatedAt            time.Time
	VotingDeadline       time.Time
	Status               ProposalStatus
	VoteCount            Tally
}

// SMSVotingRegistration maps an active proposal to the short numeric code
// members use in SMS replies. Short codes are unique among currently
// registered proposals only; a closed proposal's code may be reused.
type SMSVotingRegistration struct {
	ProposalID     uuid.UUID
	ShortCode      string
	Title          string
	GroupID        uuid.UUID
	VotingDeadline time.Time
	CreatedAt      time.Time
}
