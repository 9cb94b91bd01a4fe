package module

import (
	"time"

	"linguabot/internal/platform/config"
)

// Options holds configuration settings for the engines module
type Options struct {
	LoadTimeout time.Duration
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_ENGINES_")
	return Options{
		LoadTimeout: ef.MayDuration("LOAD_TIMEOUT", 90*time.Second),
	}
}
