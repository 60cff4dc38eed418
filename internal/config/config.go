package config

import (
	"os"
	"time"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// Config holds all application configuration.
type Config struct {
	AppName string
	AppPort string

	// Empty DBUrl keeps every store in-process; see repositories.
	DBUrl string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string

	OTPLength          int
	OTPExpiry          time.Duration
	OTPRequestInterval time.Duration
	MaxOTPAttempts     int

	SMSLimitPerNumberPerHour int
	GlobalSMSLimitPerHour    int
	RateLimitWindow          time.Duration
	SMSGatewayTimeout        time.Duration

	DefaultVotingPeriod time.Duration
}

// Constants for configuration defaults.
const (
	AppName = "governance-service"

	OTPLength                 = 6
	DefaultOTPExpiry          = 10 * time.Minute
	DefaultOTPRequestInterval = 1 * time.Minute
	MaxOTPAttempts            = 3

	DefaultSMSLimitPerNumberPerHour = 5
	DefaultGlobalSMSLimitPerHour    = 1000
	DefaultRateLimitWindow          = 1 * time.Hour
	DefaultSMSGatewayTimeout        = 10 * time.Second

	DefaultVotingPeriod = 7 * 24 * time.Hour
)

// LoadConfig reads environment variables and returns a *Config.
func LoadConfig() *Config {
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Warn("DB_URL is not set; using in-memory stores (not for production)")
	}

	twilioSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twilioToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioFrom := os.Getenv("TWILIO_FROM_PHONE")
	if twilioSID == "" || twilioToken == "" || twilioFrom == "" {
		utils.Logger.Warn("Twilio credentials are not fully configured; outbound SMS will be simulated")
	}

	return &Config{
		AppName: AppName,
		AppPort: appPort,
		DBUrl:   dbURL,

		TwilioAccountSID: twilioSID,
		TwilioAuthToken:  twilioToken,
		TwilioFromPhone:  twilioFrom,

		OTPLength:          OTPLength,
		OTPExpiry:          DefaultOTPExpiry,
		OTPRequestInterval: DefaultOTPRequestInterval,
		MaxOTPAttempts:     MaxOTPAttempts,

		SMSLimitPerNumberPerHour: DefaultSMSLimitPerNumberPerHour,
		GlobalSMSLimitPerHour:    DefaultGlobalSMSLimitPerHour,
		RateLimitWindow:          DefaultRateLimitWindow,
		SMSGatewayTimeout:        DefaultSMSGatewayTimeout,

		DefaultVotingPeriod: DefaultVotingPeriod,
	}
}
