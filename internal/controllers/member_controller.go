package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// MemberController handles the group and member directory endpoints.
type MemberController struct {
	memberService services.MemberService
	voteService   services.VoteService
}

func NewMemberController(memberService services.MemberService, voteService services.VoteService) *MemberController {
	return &MemberController{memberService: memberService, voteService: voteService}
}

func (c *MemberController) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.memberService.CreateGroup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrPhoneExists) {
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Leader phone number already registered", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create group", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

func (c *MemberController) GetGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}

	resp, err := c.memberService.GetGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Group not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch group", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MemberController) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.memberService.ListGroups(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list groups", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MemberController) ListGroupMembersHandler(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathUUID(w, r, "groupId")
	if !ok {
		return
	}

	resp, err := c.memberService.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Group not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list group members", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MemberController) RegisterMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.memberService.RegisterMember(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPhoneExists):
			utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Phone number already registered", nil, err)
		case errors.Is(err, utils.ErrNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Group not found", nil, err)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to register member", nil, err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

func (c *MemberController) GetMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(w, r, "memberId")
	if !ok {
		return
	}

	resp, err := c.memberService.GetMemberByID(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Member not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch member", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MemberController) GetMemberByPhoneHandler(w http.ResponseWriter, r *http.Request) {
	phoneNumber := mux.Vars(r)["phoneNumber"]
	if !utils.IsE164(phoneNumber) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid phone number", nil, utils.ErrInvalidPhone)
		return
	}

	resp, err := c.memberService.GetMemberByPhone(r.Context(), phoneNumber)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Member not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch member", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *MemberController) VotingHistoryHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(w, r, "memberId")
	if !ok {
		return
	}

	resp, err := c.voteService.GetVotingHistory(r.Context(), memberID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch voting history", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
