// Package module wires the translate endpoint into the API
package module

import (
	"net/http"

	"linguabot/internal/modkit"
	"linguabot/internal/modkit/httpkit"
	str "linguabot/internal/platform/strings"
	enginesdom "linguabot/internal/services/engines/domain"

	"linguabot/internal/services/api/translate/domain"
	translatehttp "linguabot/internal/services/api/translate/http"
	"linguabot/internal/services/api/translate/service"
)

// Ports exposed by the translate module
type Ports struct {
	Translator domain.TranslatorPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ports Ports
}

// New constructs a translate module with the provided dependencies and options
func New(deps modkit.Deps, cache enginesdom.CachePort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("translate"),
		modkit.WithPrefix("/translate"),
	}, opts...)...)

	svc := service.New(deps.Pack, cache)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     Ports{Translator: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		translatehttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "translate") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
