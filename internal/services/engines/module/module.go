// Package module implements the engines module
package module

import (
	"linguabot/internal/modkit"
	"linguabot/internal/services/engines/domain"
	"linguabot/internal/services/engines/service"

	phttp "linguabot/internal/platform/net/http"
)

// Ports exposed by the engines module
type Ports struct {
	Cache domain.CachePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new engines module
func New(deps modkit.Deps, loader domain.LoaderPort, overrides Options, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("engines"),
	}, opts...)...)

	if deps.Pack == nil {
		panic("engines module: Deps.Pack is required")
	}
	if loader == nil {
		panic("engines module: loader is required")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.LoadTimeout != 0 {
		cfg.LoadTimeout = overrides.LoadTimeout
	}

	svc := service.New(deps.Pack, loader, service.Config{
		LoadTimeout: cfg.LoadTimeout,
	})

	return &Module{
		deps:  deps,
		ports: Ports{Cache: svc},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "engines" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing; engines is not an HTTP module
func (m *Module) MountRoutes(phttp.Router) {}
