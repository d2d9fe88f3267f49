package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
)

type fakeMessageCreator struct {
	got  *twilioApi.CreateMessageParams
	resp *twilioApi.ApiV2010Message
	err  error
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func strPtr(s string) *string { return &s }

func TestNewTwilioServiceRequiresCredentials(t *testing.T) {
	_, err := NewTwilioService(config.TwilioConfig{AccountSID: "AC123"}, zap.NewNop())
	assert.Error(t, err)

	svc, err := NewTwilioService(config.TwilioConfig{
		AccountSID:   "AC123",
		AuthToken:    "secret",
		WhatsAppFrom: "+14155238886",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+14155238886", svc.from)
}

func TestSendWhatsAppMessage(t *testing.T) {
	api := &fakeMessageCreator{resp: &twilioApi.ApiV2010Message{Sid: strPtr("SM1")}}
	svc := &TwilioService{api: api, from: "whatsapp:+14155238886", logger: zap.NewNop()}

	require.NoError(t, svc.SendWhatsAppMessage("+94771234567", "hello"))
	require.NotNil(t, api.got)
	assert.Equal(t, "whatsapp:+94771234567", *api.got.To)
	assert.Equal(t, "whatsapp:+14155238886", *api.got.From)
	assert.Equal(t, "hello", *api.got.Body)
}

func TestSendWhatsAppMessageErrors(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		api := &fakeMessageCreator{err: errors.New("boom")}
		svc := &TwilioService{api: api, from: "whatsapp:+1", logger: zap.NewNop()}
		assert.ErrorContains(t, svc.SendWhatsAppMessage("whatsapp:+94771234567", "hi"), "boom")
	})

	t.Run("twilio error code", func(t *testing.T) {
		code := 63016
		api := &fakeMessageCreator{resp: &twilioApi.ApiV2010Message{ErrorCode: &code, ErrorMessage: strPtr("outside window")}}
		svc := &TwilioService{api: api, from: "whatsapp:+1", logger: zap.NewNop()}
		assert.EqualError(t, svc.SendWhatsAppMessage("+94771234567", "hi"), "twilio error 63016: outside window")
	})
}
