package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// voteMessageRegex matches a whole trimmed, upper-cased message body of
// the form YES### or NO### (3 or 4 digit short code).
var voteMessageRegex = regexp.MustCompile(`^(YES|NO)(\d{3,4})$`)

// SMSVotingService runs proposal voting over SMS: it opens voting with a
// short code broadcast and turns inbound replies into ledger votes.
type SMSVotingService interface {
	// StartVoting registers a short code for the proposal and broadcasts
	// voting instructions to every eligible (phone-verified) group member.
	StartVoting(ctx context.Context, proposalID uuid.UUID) (*dtos.StartSMSVotingResponse, error)
	// ProcessInboundSMS handles one inbound message. Rejections are
	// reported in the response payload, never as an error.
	ProcessInboundSMS(ctx context.Context, fromPhone, body string) (*dtos.SMSVoteResponse, error)
	VotingStatus(ctx context.Context, proposalID uuid.UUID) (*dtos.VotingStatusResponse, error)
}

type smsVotingService struct {
	shortCodeRepo repositories.ShortCodeRepository
	memberRepo    repositories.MemberRepository
	proposalRepo  repositories.ProposalRepository
	voteService   VoteService
	gateway       SMSGateway
}

func NewSMSVotingService(
	shortCodeRepo repositories.ShortCodeRepository,
	memberRepo repositories.MemberRepository,
	proposalRepo repositories.ProposalRepository,
	voteService VoteService,
	gateway SMSGateway,
) SMSVotingService {
	return &smsVotingService{
		shortCodeRepo: shortCodeRepo,
		memberRepo:    memberRepo,
		proposalRepo:  proposalRepo,
		voteService:   voteService,
		gateway:       gateway,
	}
}

// ParseVoteMessage extracts the choice and short code from a message body.
// The body is trimmed and upper-cased before matching; anything that is
// not exactly YES### or NO### is rejected.
func ParseVoteMessage(body string) (choice bool, shortCode string, ok bool) {
	normalized := strings.ToUpper(strings.TrimSpace(body))
	m := voteMessageRegex.FindStringSubmatch(normalized)
	if m == nil {
		return false, "", false
	}
	return m[1] == "YES", m[2], true
}

func (s *smsVotingService) StartVoting(ctx context.Context, proposalID uuid.UUID) (*dtos.StartSMSVotingResponse, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, utils.ErrNotFound
	}
	if proposal.Status != models.ProposalVoting {
		return nil, utils.ErrVotingClosed
	}

	members, err := s.memberRepo.ListGroupMembers(ctx, proposal.GroupID)
	if err != nil {
		return nil, err
	}
	var eligible []models.Member
	for _, m := range members {
		if m.PhoneVerified {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil, utils.ErrNoEligibleVoters
	}

	reg, err := s.shortCodeRepo.Register(ctx, proposalID, proposal.Title, proposal.GroupID, proposal.VotingDeadline)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf(
		"HARAMBEE DAO VOTE\nProposal: %s\nVote by %s\nReply: YES%s or NO%s\nExample: YES%s",
		proposal.Title,
		proposal.VotingDeadline.Format("Jan 2 15:04"),
		reg.ShortCode, reg.ShortCode, reg.ShortCode,
	)

	result := dtos.BroadcastResult{TotalRecipients: len(eligible)}
	for _, member := range eligible {
		if err := s.gateway.Send(ctx, member.PhoneNumber, body); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to send voting SMS to %s", member.PhoneNumber)
			result.FailedCount++
			continue
		}
		result.SentCount++
	}

	utils.Logger.Infof("SMS voting started for proposal %s with code %s (%d/%d sent)",
		proposalID, reg.ShortCode, result.SentCount, result.TotalRecipients)
	return &dtos.StartSMSVotingResponse{
		ProposalID:     proposalID,
		ShortCode:      reg.ShortCode,
		EligibleVoters: len(eligible),
		Broadcast:      result,
	}, nil
}

func (s *smsVotingService) ProcessInboundSMS(ctx context.Context, fromPhone, body string) (*dtos.SMSVoteResponse, error) {
	resp := &dtos.SMSVoteResponse{PhoneNumber: fromPhone}
	reject := func(message string) *dtos.SMSVoteResponse {
		resp.ErrorMessage = &message
		resp.ResponseMessage = message
		utils.Logger.Warnf("Rejected SMS vote from %s: %s", fromPhone, message)
		return resp
	}

	member, err := s.memberRepo.GetMemberByPhone(ctx, fromPhone)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return reject("Phone number not registered. Please register first."), nil
	}
	resp.MemberID = &member.ID
	if !member.PhoneVerified {
		return reject("Phone number not verified. Please complete verification first."), nil
	}

	choice, shortCode, ok := ParseVoteMessage(body)
	if !ok {
		return reject("Invalid vote format. Use YES### or NO### (e.g., YES001)"), nil
	}
	resp.Vote = &choice

	reg, err := s.shortCodeRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return reject(fmt.Sprintf("Invalid proposal code: %s", shortCode)), nil
	}
	resp.ProposalID = &reg.ProposalID

	if time.Now().After(reg.VotingDeadline) {
		return reject(fmt.Sprintf("Voting deadline passed for proposal %s", shortCode)), nil
	}

	tally, err := s.voteService.RecordVote(ctx, member.ID, reg.ProposalID, choice)
	if err != nil {
		if err == utils.ErrAlreadyVoted {
			return reject(fmt.Sprintf("You already voted on proposal %s", shortCode)), nil
		}
		return nil, err
	}

	voteWord := "NO"
	if choice {
		voteWord = "YES"
	}
	confirmation := fmt.Sprintf("Vote recorded: %s for %s\nCurrent tally: %d YES, %d NO",
		voteWord, truncateTitle(reg.Title), tally.Yes, tally.No)

	resp.Processed = true
	resp.ResponseMessage = confirmation

	if err := s.gateway.Send(ctx, fromPhone, confirmation); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send vote confirmation to %s", fromPhone)
	}

	utils.Logger.Infof("Processed SMS vote from %s on proposal %s", fromPhone, reg.ProposalID)
	return resp, nil
}

func (s *smsVotingService) VotingStatus(ctx context.Context, proposalID uuid.UUID) (*dtos.VotingStatusResponse, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, utils.ErrNotFound
	}

	reg, err := s.shortCodeRepo.GetByProposalID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	tally, err := s.voteService.GetTally(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	status := &dtos.VotingStatusResponse{
		ProposalID:     proposalID,
		Title:          proposal.Title,
		VotingDeadline: proposal.VotingDeadline,
		IsActive:       proposal.Status == models.ProposalVoting && time.Now().Before(proposal.VotingDeadline),
		VoteTally:      tally,
	}
	if reg != nil {
		status.ShortCode = reg.ShortCode
	}
	return status, nil
}

func truncateTitle(title string) string {
	if len(title) <= 30 {
		return title
	}
	return title[:30] + "..."
}
