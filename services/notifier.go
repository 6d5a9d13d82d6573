package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/yeremiapane/catering-boq/utils"
)

// Notifier delivers an operational alert to a person.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier writes alerts to the info log. It is used when SMS is not configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, message string) error {
	utils.InfoLogger.WithField("channel", "log").Info(message)
	return nil
}

type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends alerts as SMS to a single phone number.
type TwilioNotifier struct {
	api  messageSender
	from string
	to   string
}

func NewTwilioNotifier(accountSID, authToken, from, to string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from, to: to}
}

func (n *TwilioNotifier) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !utils.ValidatePhone(n.to) {
		return fmt.Errorf("twilio: invalid alert phone %q", n.to)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(utils.NormalizePhone(n.to))
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: send sms: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return errors.New("twilio: message accepted without a sid")
	}
	utils.InfoLogger.WithField("sid", *resp.Sid).Info("low stock sms sent")
	return nil
}
