package module

import (
	"time"

	"linguabot/internal/platform/config"
)

// Options holds configuration settings for the session module
type Options struct {
	TranslateTimeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ENGINES_")
	return Options{
		TranslateTimeout: ef.MayDuration("TRANSLATE_TIMEOUT", 30*time.Second),
	}
}
