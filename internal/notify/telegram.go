package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// sender is the slice of tgbotapi.BotAPI the notifier needs; tests swap in
// a recording fake.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts event summaries to a single chat. Every send happens in
// its own goroutine so the HTTP response never waits on the Telegram API.
type Telegram struct {
	bot    sender
	chatID int64
	log    *zap.Logger
}

var _ Notifier = (*Telegram)(nil)

func NewTelegram(cfg config.TelegramConfig, log *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.Info("Telegram notifications enabled", zap.String("bot", bot.Self.UserName))
	return &Telegram{bot: bot, chatID: cfg.ChatID, log: log}, nil
}

func (t *Telegram) RegistrationCreated(reg *models.Registration) {
	t.send(FormatRegistration(reg))
}

func (t *Telegram) TestResultSubmitted(reg *models.Registration, res *models.TestResult) {
	t.send(FormatTestResult(reg, res))
}

func (t *Telegram) send(text string) {
	go func() {
		if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
			t.log.Warn("Failed to deliver telegram notification", zap.Error(err))
		}
	}()
}

// FormatRegistration renders the registration summary sent to the chat.
func FormatRegistration(reg *models.Registration) string {
	return fmt.Sprintf(
		"🆕 Новая регистрация\n\nФИО: %s\nВозраст: %d\nТелефон: %s\nTelegram: %s\nID: %s",
		reg.FullName(), reg.Age, reg.Phone, reg.Telegram, reg.RegistrationID,
	)
}

// FormatTestResult renders the test result summary, enriched with the
// registration's name fields.
func FormatTestResult(reg *models.Registration, res *models.TestResult) string {
	return fmt.Sprintf(
		"📊 Результат теста\n\nФИО: %s\nУровень: %s\nБаллы: %d\nТип теста: %s\nID: %s",
		reg.FullName(), res.Level, res.Score, res.TestType, reg.RegistrationID,
	)
}
