package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/config"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// ProposalService manages the proposal lifecycle. Proposals open in VOTING
// and are resolved to PASSED or FAILED by the deadline sweep; resolution
// is idempotent so an overlapping sweep cannot double-resolve.
type ProposalService interface {
	Create(ctx context.Context, req *dtos.CreateProposalRequest) (*dtos.ProposalResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dtos.ProposalResponse, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dtos.ProposalResponse, error)
	ListByStatus(ctx context.Context, status models.ProposalStatus) ([]dtos.ProposalResponse, error)
	// CheckVotingDeadlines resolves every proposal whose deadline has
	// passed and returns how many were resolved.
	CheckVotingDeadlines(ctx context.Context) (int, error)
}

type proposalService struct {
	proposalRepo  repositories.ProposalRepository
	voteRepo      repositories.VoteRepository
	shortCodeRepo repositories.ShortCodeRepository
	cfg           *config.Config
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	voteRepo repositories.VoteRepository,
	shortCodeRepo repositories.ShortCodeRepository,
	cfg *config.Config,
) ProposalService {
	return &proposalService{
		proposalRepo:  proposalRepo,
		voteRepo:      voteRepo,
		shortCodeRepo: shortCodeRepo,
		cfg:           cfg,
	}
}

func (s *proposalService) Create(ctx context.Context, req *dtos.CreateProposalRequest) (*dtos.ProposalResponse, error) {
	now := time.Now()
	deadline := req.Deadline
	if !deadline.After(now) {
		deadline = now.Add(s.cfg.DefaultVotingPeriod)
	}

	proposal := &models.Proposal{
		ID:                   uuid.New(),
		GroupID:              req.GroupID,
		Title:                req.Title,
		Description:          req.Description,
		AmountRequested:      req.AmountRequested,
		MilestoneDescription: req.MilestoneDescription,
		CreatedBy:            req.CreatedBy,
		CreatedAt:            now,
		VotingDeadline:       deadline,
		Status:               models.ProposalVoting,
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	utils.Logger.Infof("Proposal %s created for group %s, voting until %s",
		proposal.ID, proposal.GroupID, proposal.VotingDeadline.Format(time.RFC3339))
	return proposalToResponse(proposal), nil
}

func (s *proposalService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.ProposalResponse, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, utils.ErrNotFound
	}
	return proposalToResponse(proposal), nil
}

func (s *proposalService) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]dtos.ProposalResponse, error) {
	proposals, err := s.proposalRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return proposalsToResponses(proposals), nil
}

func (s *proposalService) ListByStatus(ctx context.Context, status models.ProposalStatus) ([]dtos.ProposalResponse, error) {
	proposals, err := s.proposalRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return proposalsToResponses(proposals), nil
}

func (s *proposalService) CheckVotingDeadlines(ctx context.Context) (int, error) {
	expired, err := s.proposalRepo.ListExpiredVoting(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, proposal := range expired {
		tally, err := s.voteRepo.GetTally(ctx, proposal.ID)
		if err != nil {
			utils.Logger.WithError(err).Errorf("Failed to tally proposal %s", proposal.ID)
			continue
		}

		status := models.ProposalFailed
		if tally.Passed() {
			status = models.ProposalPassed
		}

		changed, err := s.proposalRepo.ResolveVoting(ctx, proposal.ID, status, tally)
		if err != nil {
			utils.Logger.WithError(err).Errorf("Failed to resolve proposal %s", proposal.ID)
			continue
		}
		if !changed {
			continue
		}

		if err := s.shortCodeRepo.Close(ctx, proposal.ID); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to release short code for proposal %s", proposal.ID)
		}

		utils.Logger.Infof("Proposal %s resolved as %s (%d yes / %d no of %d)",
			proposal.ID, status, tally.Yes, tally.No, tally.Total)
		resolved++
	}
	return resolved, nil
}

func proposalToResponse(proposal *models.Proposal) *dtos.ProposalResponse {
	return &dtos.ProposalResponse{
		ProposalID:           proposal.ID,
		GroupID:              proposal.GroupID,
		Title:                proposal.Title,
		Description:          proposal.Description,
		AmountRequested:      proposal.AmountRequested,
		MilestoneDescription: proposal.MilestoneDescription,
		CreatedBy:            proposal.CreatedBy,
		CreatedAt:            proposal.CreatedAt,
		VotingDeadline:       proposal.VotingDeadline,
		Status:               string(proposal.Status),
		VoteCount:            proposal.VoteCount,
	}
}

func proposalsToResponses(proposals []models.Proposal) []dtos.ProposalResponse {
	resp := make([]dtos.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		resp = append(resp, *proposalToResponse(&proposals[i]))
	}
	return resp
}
