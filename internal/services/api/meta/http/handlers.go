// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"linguabot/internal/core/langpack"
	"linguabot/internal/core/version"
	"linguabot/internal/modkit/httpkit"
	enginesdom "linguabot/internal/services/engines/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Pack        *langpack.Pack
	Cache       enginesdom.CachePort
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/languages", h.languages)
	httpkit.Get(r, "/engines", h.engines)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// LanguagesResponse lists the catalogue
type LanguagesResponse struct {
	Languages []langpack.Language `json:"languages"`
	Pairs     []string            `json:"pairs"`
}

// EnginesResponse reports which engines are resident
type EnginesResponse struct {
	Resident []string `json:"resident"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

func (h *handlers) languages(_ *http.Request) (any, error) {
	pairs := h.deps.Pack.Pairs()
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key())
	}
	return LanguagesResponse{
		Languages: h.deps.Pack.Languages(),
		Pairs:     keys,
	}, nil
}

func (h *handlers) engines(_ *http.Request) (any, error) {
	resident := h.deps.Cache.Resident()
	keys := make([]string, 0, len(resident))
	for _, p := range resident {
		keys = append(keys, p.Key())
	}
	return EnginesResponse{Resident: keys}, nil
}
