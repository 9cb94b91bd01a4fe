// Package module implements the session module
package module

import (
	"linguabot/internal/core/token"
	"linguabot/internal/modkit"
	mmodule "linguabot/internal/modkit/module"
	enginesdom "linguabot/internal/services/engines/domain"
	offersdom "linguabot/internal/services/offers/domain"
	prefsdom "linguabot/internal/services/prefs/domain"
	"linguabot/internal/services/session/domain"
	"linguabot/internal/services/session/service"

	phttp "linguabot/internal/platform/net/http"
)

// Ports exposed by the session module
type Ports struct {
	Router domain.RouterPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// WithDepsModules lets callers pass dependency modules without exposing MustPortsOf in main
func WithDepsModules(offers, prefs, engines mmodule.Module) modkit.Option {
	return modkit.WithPorts(DepsModules{Offers: offers, Prefs: prefs, Engines: engines})
}

// DepsModules is a convenience carrier of dependency modules.
// The session module extracts the required ports internally
type DepsModules struct {
	Offers  mmodule.Module
	Prefs   mmodule.Module
	Engines mmodule.Module
}

// New constructs a new session module
func New(
	deps modkit.Deps,
	codec *token.Codec,
	detector domain.DetectorPort,
	present domain.PresenterPort,
	overrides Options,
	opts ...modkit.Option,
) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("session"),
	}, opts...)...)

	dm, ok := b.Ports.(DepsModules)
	if !ok {
		panic("session module: expected WithDepsModules(offers, prefs, engines)")
	}
	resolver := mmodule.MustPortsOf[offersdom.ResolverPort](dm.Offers)
	store := mmodule.MustPortsOf[prefsdom.StorePort](dm.Prefs)
	cache := mmodule.MustPortsOf[enginesdom.CachePort](dm.Engines)

	if deps.Pack == nil {
		panic("session module: Deps.Pack is required")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.TranslateTimeout != 0 {
		cfg.TranslateTimeout = overrides.TranslateTimeout
	}

	svc := service.New(deps.Pack, codec, detector, resolver, store, cache, present, service.Config{
		TranslateTimeout: cfg.TranslateTimeout,
	})

	return &Module{
		deps:  deps,
		ports: Ports{Router: svc},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "session" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing; session is not an HTTP module
func (m *Module) MountRoutes(phttp.Router) {}
