package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// ProposalController handles proposal CRUD and the SMS voting lifecycle
// endpoints.
type ProposalController struct {
	proposalService  services.ProposalService
	smsVotingService services.SMSVotingService
}

func NewProposalController(proposalService services.ProposalService, smsVotingService services.SMSVotingService) *ProposalController {
	return &ProposalController{proposalService: proposalService, smsVotingService: smsVotingService}
}

func (c *ProposalController) CreateProposalHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateProposalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.proposalService.Create(r.Context(), &req)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create proposal", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

func (c *ProposalController) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathUUID(w, r, "proposalId")
	if !ok {
		return
	}

	resp, err := c.proposalService.GetByID(r.Context(), proposalID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Proposal not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch proposal", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *ProposalController) ListGroupProposalsHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}

	resp, err := c.proposalService.ListByGroup(r.Context(), groupID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list proposals", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *ProposalController) ListProposalsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := models.ProposalStatus(strings.ToUpper(mux.Vars(r)["status"]))
	switch status {
	case models.ProposalDraft, models.ProposalVoting, models.ProposalPassed, models.ProposalFailed, models.ProposalExecuted:
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid proposal status", nil)
		return
	}

	resp, err := c.proposalService.ListByStatus(r.Context(), status)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list proposals", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *ProposalController) StartSMSVotingHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathUUID(w, r, "proposalId")
	if !ok {
		return
	}

	resp, err := c.smsVotingService.StartVoting(r.Context(), proposalID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Proposal not found", nil, err)
		case errors.Is(err, utils.ErrVotingClosed):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeVotingClosed, "Proposal is not open for voting", nil, err)
		case errors.Is(err, utils.ErrNoEligibleVoters):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "No eligible voters in group", nil, err)
		case errors.Is(err, utils.ErrNoShortCodes):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "No short codes available", nil, err)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to start SMS voting", nil, err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *ProposalController) SMSVotingStatusHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathUUID(w, r, "proposalId")
	if !ok {
		return
	}

	resp, err := c.smsVotingService.VotingStatus(r.Context(), proposalID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Proposal not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch voting status", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
