package telegram

import "linguabot/internal/platform/config"

// Options configures the Telegram transport
type Options struct {
	// Token is the bot token from BotFather
	Token string

	// Workers bounds concurrent update handling
	Workers int

	// UpdateTimeout is the long-poll timeout in seconds
	UpdateTimeout int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("BOT_")
	return Options{
		Token:         bf.MustString("TELEGRAM_TOKEN"),
		Workers:       bf.MayInt("WORKERS", 4),
		UpdateTimeout: bf.MayInt("UPDATE_TIMEOUT", 30),
	}
}
