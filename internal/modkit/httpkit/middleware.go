package httpkit

import (
	"net/http"
	"time"

	phttp "linguabot/internal/platform/net/http"
	"linguabot/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with BearerAuth in main as needed
// corsOrigins narrows CORS; empty allows the library default
func CommonStack(corsOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),
		middleware.Heartbeat("/health"),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins}),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// BearerAuth wires the bearer token middleware to the platform JSON writer
func BearerAuth(token string) func(http.Handler) http.Handler {
	// middleware expects write func(w http.ResponseWriter, status int, body any)
	// use phttp.JSON which matches that signature
	return middleware.BearerAuth(token, phttp.JSON)
}
