package controllers

import (
	"net/http"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// VerificationController handles the phone verification (OTP) endpoints.
type VerificationController struct {
	verificationService services.VerificationService
}

func NewVerificationController(verificationService services.VerificationService) *VerificationController {
	return &VerificationController{verificationService: verificationService}
}

// RequestOTPHandler issues a new one-time code. Rate-limit and delivery
// failures come back as 200 with otp_sent=false so the client can show
// the embedded message.
func (c *VerificationController) RequestOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.OTPRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.verificationService.RequestOTP(r.Context(), req.PhoneNumber, models.VerificationType(req.VerificationType))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to request OTP", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *VerificationController) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.OTPVerifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.verificationService.VerifyOTP(r.Context(), req.PhoneNumber, req.OTPCode, models.VerificationType(req.VerificationType))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to verify OTP", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// OTPStatusHandler reports the live code for a phone number, if any.
// The phone number comes in as a query parameter.
func (c *VerificationController) OTPStatusHandler(w http.ResponseWriter, r *http.Request) {
	phoneNumber := r.URL.Query().Get("phone_number")
	if !utils.IsE164(phoneNumber) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid phone_number", nil, utils.ErrInvalidPhone)
		return
	}

	resp, err := c.verificationService.OTPStatus(r.Context(), phoneNumber)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch OTP status", nil, err)
		return
	}
	if resp == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No active OTP for this phone number", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
