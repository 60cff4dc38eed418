package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// SMSWebhookController receives inbound message events from the SMS
// provider. The endpoint always answers 200 so the provider does not
// retry: vote rejections are carried inside the response payload.
type SMSWebhookController struct {
	smsVotingService services.SMSVotingService
}

func NewSMSWebhookController(smsVotingService services.SMSVotingService) *SMSWebhookController {
	return &SMSWebhookController{smsVotingService: smsVotingService}
}

func (c *SMSWebhookController) InboundSMSHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseWebhookRequest(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid webhook payload", nil, err)
		return
	}

	utils.Logger.Infof("Inbound SMS from %s (sid: %s)", req.From, req.MessageSid)

	resp, err := c.smsVotingService.ProcessInboundSMS(r.Context(), req.From, req.Body)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to process inbound SMS", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// parseWebhookRequest accepts Twilio's form encoding and falls back to a
// JSON body with the same field names.
func parseWebhookRequest(r *http.Request) (*dtos.SMSWebhookRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return &dtos.SMSWebhookRequest{
			From:       r.PostFormValue("From"),
			To:         r.PostFormValue("To"),
			Body:       r.PostFormValue("Body"),
			MessageSid: r.PostFormValue("MessageSid"),
		}, nil
	}

	var req dtos.SMSWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
