package models

import "time"

// VerificationType describes what an OTP was issued for.
type VerificationType string

const (
	VerificationRegistration  VerificationType = "registration"
	VerificationVoting        VerificationType = "voting"
	VerificationPasswordReset VerificationType = "password_reset"
)

// ValidVerificationType reports whether t is one of the known types.
func ValidVerificationType(t VerificationType) bool {
	switch t {
	case VerificationRegistration, VerificationVoting, VerificationPasswordReset:
		return true
	}
	return false
}

// OTPRecord is the single live verification code for a phone number.
// A new request overwrites the prior record for the same number.
type OTPRecord struct {
	PhoneNumber      string
	Code             string
	VerificationType VerificationType
	ExpiresAt        time.Time
	Attempts         int
	LastRequestAt    time.Time
}
