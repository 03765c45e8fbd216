package middleware

import (
	"net/http"
	"time"
)

// WithWriteDeadline sets a per-request write deadline on every request
// except the exempted paths. The server cannot carry a global
// WriteTimeout because /sse streams stay open for the whole MCP
// session, so the deadline is applied here, outside the router, where
// the response controller still reaches the underlying connection.
// Writers without deadline support (test recorders) are left alone.
func WithWriteDeadline(next http.Handler, d time.Duration, exemptPaths ...string) http.Handler {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !exempt[r.URL.Path] {
			rc := http.NewResponseController(w)
			_ = rc.SetWriteDeadline(time.Now().Add(d))
		}
		next.ServeHTTP(w, r)
	})
}
