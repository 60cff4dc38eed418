package controllers

import (
	"errors"
	"net/http"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// KYCController handles identity document submission and review endpoints.
type KYCController struct {
	kycService services.KYCService
}

func NewKYCController(kycService services.KYCService) *KYCController {
	return &KYCController{kycService: kycService}
}

func (c *KYCController) SubmitDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SubmitKYCDocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.kycService.SubmitDocument(r.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Member not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to submit document", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

func (c *KYCController) ListMemberDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(w, r, "memberId")
	if !ok {
		return
	}

	resp, err := c.kycService.ListMemberDocuments(r.Context(), memberID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list documents", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *KYCController) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.KYCReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.kycService.Review(r.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Member not found", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to record review", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *KYCController) ListMemberReviewsHandler(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathUUID(w, r, "memberId")
	if !ok {
		return
	}

	resp, err := c.kycService.ListMemberReviews(r.Context(), memberID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list reviews", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
