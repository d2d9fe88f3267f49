package services

import (
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
)

// MessageSender delivers a reply to a WhatsApp number
type MessageSender interface {
	SendWhatsAppMessage(to string, message string) error
}

// messageCreator is the slice of the Twilio REST API the service uses
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioService struct {
	api    messageCreator
	from   string // Your Twilio WhatsApp number
	logger *zap.Logger
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(cfg config.TwilioConfig, logger *zap.Logger) (*TwilioService, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioService{
		api:    client.Api,
		from:   whatsappAddress(cfg.WhatsAppFrom),
		logger: logger,
	}, nil
}

// SendWhatsAppMessage sends a WhatsApp message via Twilio
func (t *TwilioService) SendWhatsAppMessage(to string, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(whatsappAddress(to))
	params.SetBody(message)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		t.logger.Error("❌ Failed to send WhatsApp message", zap.Error(err))
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.logger.Info("✅ WhatsApp message sent", zap.String("sid", sid))
	return nil
}

// whatsappAddress adds the "whatsapp:" channel prefix Twilio expects.
func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
