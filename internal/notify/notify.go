package notify

import (
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// Notifier delivers best-effort event summaries to the chat sink. Calls
// return immediately; delivery runs in the background and failures are
// logged, never reported to the caller. Handlers invoke it only after the
// primary write has committed.
type Notifier interface {
	RegistrationCreated(reg *models.Registration)
	TestResultSubmitted(reg *models.Registration, res *models.TestResult)
}

// New picks the implementation for the configured credentials. Missing or
// rejected credentials degrade to the disabled notifier; startup never fails
// because of the notification sink.
func New(cfg config.TelegramConfig, log *zap.Logger) Notifier {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		log.Info("Telegram notifications disabled: no credentials configured")
		return &Disabled{log: log}
	}
	tg, err := NewTelegram(cfg, log)
	if err != nil {
		log.Warn("Telegram notifications disabled: bot initialization failed", zap.Error(err))
		return &Disabled{log: log}
	}
	return tg
}

// Disabled swallows every event. Used when no credentials are configured
// and as the default in tests.
type Disabled struct {
	log *zap.Logger
}

var _ Notifier = (*Disabled)(nil)

func (d *Disabled) RegistrationCreated(reg *models.Registration) {
	d.log.Debug("Skipping registration notification", zap.String("registration_id", reg.RegistrationID))
}

func (d *Disabled) TestResultSubmitted(reg *models.Registration, res *models.TestResult) {
	d.log.Debug("Skipping test result notification", zap.String("registration_id", reg.RegistrationID))
}
