package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "linguabot/internal/platform/errors"
	pnet "linguabot/internal/platform/net"
)

// BearerAuth guards the admin surface with a static token.
// An empty token disables the check (local/dev usage)
func BearerAuth(token string, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				status, body := pnet.Error(perr.Unauthorizedf("missing or invalid bearer token"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithPrincipal(r.Context(), "admin")))
		})
	}
}
