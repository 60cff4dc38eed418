package services

import (
	"context"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/config"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// SMSGateway is the outbound text-message dependency. A failed Send means
// "not delivered" and never invalidates caller state: authoritative writes
// happen before the gateway call and failures are only logged upstream.
type SMSGateway interface {
	Send(ctx context.Context, toPhone, body string) error
}

// NewSMSGateway returns the Twilio-backed gateway, or a simulated one that
// only logs when Twilio credentials are not configured.
func NewSMSGateway(cfg *config.Config) SMSGateway {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromPhone == "" {
		return &simulatedSMSGateway{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	client.SetTimeout(cfg.SMSGatewayTimeout)

	return &twilioSMSGateway{client: client, fromPhone: cfg.TwilioFromPhone}
}

type twilioSMSGateway struct {
	client    *twilio.RestClient
	fromPhone string
}

func (g *twilioSMSGateway) Send(ctx context.Context, toPhone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(g.fromPhone)
	params.SetBody(body)

	resp, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: failed to send sms via twilio: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.Sid != nil {
		utils.Logger.Debugf("SMS sent to %s, SID: %s", toPhone, *resp.Sid)
	}
	return nil
}

type simulatedSMSGateway struct{}

func (g *simulatedSMSGateway) Send(ctx context.Context, toPhone, body string) error {
	utils.Logger.Infof("SIMULATED SMS to %s: %s", toPhone, body)
	return nil
}
