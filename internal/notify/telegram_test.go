package notify

import (
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// fakeSender captures sent messages on a channel so tests can wait for the
// background delivery goroutine.
type fakeSender struct {
	sent chan tgbotapi.Chattable
	err  error
}

func newFakeSender(err error) *fakeSender {
	return &fakeSender{sent: make(chan tgbotapi.Chattable, 1), err: err}
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent <- c
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) wait(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	select {
	case c := <-f.sent:
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok, "expected a plain text message, got %T", c)
		return msg
	case <-time.After(time.Second):
		t.Fatal("no notification delivered")
		return tgbotapi.MessageConfig{}
	}
}

func testRegistration() *models.Registration {
	return &models.Registration{
		RegistrationID: "REG_1724244000123042",
		LastName:       "Ivanov",
		FirstName:      "Ivan",
		Age:            30,
		Phone:          "+71234567890",
		Telegram:       "@ivanov",
	}
}

func TestFormatRegistration(t *testing.T) {
	text := FormatRegistration(testRegistration())
	require.Contains(t, text, "Ivanov Ivan")
	require.Contains(t, text, "+71234567890")
	require.Contains(t, text, "@ivanov")
	require.Contains(t, text, "REG_1724244000123042")
}

func TestFormatTestResult(t *testing.T) {
	text := FormatTestResult(testRegistration(), &models.TestResult{
		Level:    "High",
		Score:    85,
		TestType: "regular",
	})
	require.Contains(t, text, "Ivanov Ivan")
	require.Contains(t, text, "High")
	require.Contains(t, text, "85")
	require.Contains(t, text, "regular")
}

func TestTelegramSendsToConfiguredChat(t *testing.T) {
	fake := newFakeSender(nil)
	tg := &Telegram{bot: fake, chatID: 42, log: zap.NewNop()}

	tg.RegistrationCreated(testRegistration())

	msg := fake.wait(t)
	require.Equal(t, int64(42), msg.ChatID)
	require.Contains(t, msg.Text, "Ivanov Ivan")
}

func TestTelegramSendFailureIsSwallowed(t *testing.T) {
	fake := newFakeSender(errors.New("telegram down"))
	tg := &Telegram{bot: fake, chatID: 42, log: zap.NewNop()}

	// Must neither panic nor block the caller.
	tg.TestResultSubmitted(testRegistration(), &models.TestResult{Level: "High", Score: 85})
	fake.wait(t)
}
