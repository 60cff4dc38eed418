package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a member's yes/no choice on a proposal. Exactly one vote per
// (member, proposal) pair is ever recorded; it is never mutated or deleted.
type Vote struct {
	MemberID   uuid.UUID
	ProposalID uuid.UUID
	Choice     bool
	CreatedAt  time.Time
}
