package thttp

import (
	"net/http"
	"strings"
)

var (
	allowedMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	exposedHeaders = []string{"ETag", "X-Request-Id"}
)

// CORS is a middleware allowing cross-origin requests from any origin.
// Preflight requests are answered directly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ","))
			if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
				h.Set("Access-Control-Allow-Headers", headers)
			}
			w.WriteHeader(http.StatusOK)
			return
		}

		h["Access-Control-Expose-Headers"] = []string{strings.Join(exposedHeaders, ",")}
		next.ServeHTTP(w, r)
	})
}
