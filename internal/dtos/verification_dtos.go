package dtos

import "time"

// ----------------------
// Phone verification (OTP)
// ----------------------

type OTPRequestRequest struct {
	PhoneNumber      string `json:"phone_number" validate:"required,e164"`
	VerificationType string `json:"verification_type" validate:"required,oneof=registration voting password_reset"`
}

type OTPRequestResponse struct {
	PhoneNumber string    `json:"phone_number"`
	OTPSent     bool      `json:"otp_sent"`
	ExpiresAt   time.Time `json:"expires_at"`
	Message     string    `json:"message"`
}

type OTPVerifyRequest struct {
	PhoneNumber      string `json:"phone_number" validate:"required,e164"`
	OTPCode          string `json:"otp_code" validate:"required,len=6,numeric"`
	VerificationType string `json:"verification_type" validate:"required,oneof=registration voting password_reset"`
}

type OTPVerifyResponse struct {
	PhoneNumber      string     `json:"phone_number"`
	Verified         bool       `json:"verified"`
	VerificationType string     `json:"verification_type"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

type OTPStatusResponse struct {
	PhoneNumber       string    `json:"phone_number"`
	VerificationType  string    `json:"verification_type"`
	ExpiresAt         time.Time `json:"expires_at"`
	AttemptsRemaining int       `json:"attempts_remaining"`
	CanRequestNew     bool      `json:"can_request_new"`
}
