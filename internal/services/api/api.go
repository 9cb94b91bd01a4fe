// Package api provides the admin HTTP surface for the bot
package api

import (
	"net/http"

	"linguabot/internal/modkit"
	"linguabot/internal/modkit/httpkit"
	"linguabot/internal/modkit/module"
	phttp "linguabot/internal/platform/net/http"
	enginesdom "linguabot/internal/services/engines/domain"

	metamod "linguabot/internal/services/api/meta/module"
	translatemod "linguabot/internal/services/api/translate/module"
)

// Options are the API options
type Options struct {
	Deps  modkit.Deps
	Cache enginesdom.CachePort

	// BearerToken guards mutating endpoints; empty disables auth
	BearerToken string

	// CORSOrigins narrows cross-origin access; empty allows any
	CORSOrigins []string
}

// Mount mounts the admin API onto the given router
func Mount(r phttp.Router, opt Options) {
	var guarded []func(http.Handler) http.Handler
	if opt.BearerToken != "" {
		guarded = append(guarded, httpkit.BearerAuth(opt.BearerToken))
	}

	mods := []module.Module{
		metamod.New(opt.Deps, opt.Cache),
		translatemod.New(opt.Deps, opt.Cache, modkit.WithMiddlewares(guarded...)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
