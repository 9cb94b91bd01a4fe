// Package module implements the offers module
package module

import (
	"linguabot/internal/core/token"
	"linguabot/internal/modkit"
	"linguabot/internal/services/offers/domain"
	"linguabot/internal/services/offers/service"

	phttp "linguabot/internal/platform/net/http"
)

// Ports exposed by the offers module
type Ports struct {
	Resolver domain.ResolverPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new offers module
func New(deps modkit.Deps, codec *token.Codec, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("offers"),
	}, opts...)...)

	if deps.Pack == nil {
		panic("offers module: Deps.Pack is required")
	}
	if codec == nil {
		panic("offers module: codec is required")
	}

	return &Module{
		deps:  deps,
		ports: Ports{Resolver: service.New(deps.Pack, codec)},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "offers" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing; offers is not an HTTP module
func (m *Module) MountRoutes(phttp.Router) {}
