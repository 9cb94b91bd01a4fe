package modkit

import (
	"linguabot/internal/core/langpack"
	"linguabot/internal/platform/config"
	"linguabot/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	Pack *langpack.Pack
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the pack
func (d Deps) ZeroOK() bool { return true }
