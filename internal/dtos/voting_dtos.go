package dtos

import "github.com/google/uuid"

// SMSWebhookRequest is the inbound message event delivered by the SMS
// provider. Twilio posts these fields form-encoded; a JSON body with the
// same field names is accepted too.
type SMSWebhookRequest struct {
	From       string `json:"From"`
	To         string `json:"To"`
	Body       string `json:"Body"`
	MessageSid string `json:"MessageSid"`
}

// SMSVoteResponse reports the outcome of one inbound vote message. Every
// rejection is terminal and carries a human-readable ResponseMessage; the
// webhook endpoint always answers 200 with this payload.
type SMSVoteResponse struct {
	PhoneNumber     string     `json:"phone_number"`
	MemberID        *uuid.UUID `json:"member_id"`
	ProposalID      *uuid.UUID `json:"proposal_id"`
	Vote            *bool      `json:"vote"`
	Processed       bool       `json:"processed"`
	ErrorMessage    *string    `json:"error_message"`
	ResponseMessage string     `json:"response_message"`
}
