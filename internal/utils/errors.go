package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidPhone     = errors.New("invalid_phone")
	ErrPhoneExists      = errors.New("phone_exists")
	ErrPhoneNotVerified = errors.New("phone_not_verified")
	ErrNotFound         = errors.New("not_found")

	// Voting
	ErrAlreadyVoted     = errors.New("already_voted")
	ErrVotingClosed     = errors.New("voting_closed")
	ErrNoShortCodes     = errors.New("no_short_codes_available")
	ErrNoEligibleVoters = errors.New("no_eligible_voters")

	// OTP issuance
	ErrRateLimited = errors.New("rate_limit_exceeded")

	// For external service failures (e.g., Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
