package notifier

import (
	"context"

	"go.uber.org/zap"

	"scamguard/internal/classifier"
	"scamguard/internal/config"
	"scamguard/internal/domain"
)

type Notification struct {
	Message domain.Message
	Result  classifier.Result
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Log reports flagged messages to the process log when no chat channel is
// configured.
type Log struct {
	log *zap.SugaredLogger
}

func NewLog(log *zap.SugaredLogger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(_ context.Context, n Notification) error {
	l.log.Warnw("suspicious message",
		"id", n.Message.ID,
		"author", n.Message.Username,
		"score", n.Result.Score,
		"risk", n.Result.RiskLabel,
		"reasons", n.Result.Reasons,
	)
	return nil
}

// FromConfig returns a Telegram notifier when a bot token is configured and
// a log notifier otherwise.
func FromConfig(cfg config.NotifierConfig, log *zap.SugaredLogger) Notifier {
	if cfg.TelegramToken == "" {
		return NewLog(log)
	}
	return NewTelegram(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramChatIDs)
}
