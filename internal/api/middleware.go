// Package api implements the Mannaz REST API using chi.
package api

import (
	"net/http"
	"strings"
)

// AuthMiddleware returns middleware enforcing a static Bearer token on
// every route, the SSE stream included. With enabled false the router
// runs open and requests pass straight through.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || got != token {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
