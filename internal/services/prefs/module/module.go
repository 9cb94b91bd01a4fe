// Package module implements the prefs module
package module

import (
	"linguabot/internal/modkit"
	"linguabot/internal/services/prefs/domain"
	"linguabot/internal/services/prefs/service"

	phttp "linguabot/internal/platform/net/http"
)

// Ports exposed by the prefs module
type Ports struct {
	Store domain.StorePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new prefs module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("prefs"),
	}, opts...)...)

	return &Module{
		deps:  deps,
		ports: Ports{Store: service.New()},
	}
}

// Name returns the module name
func (m *Module) Name() string { return "prefs" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing; prefs is not an HTTP module
func (m *Module) MountRoutes(phttp.Router) {}
