// Package cors applies a configurable cross-origin policy: an origin
// allow-list and a method list, both supplied at startup.
package cors

import (
	"net/http"
	"strconv"
	"strings"
)

// Config holds the cross-origin policy.
type Config struct {
	// AllowedOrigins is the exact-match origin allow-list. A single "*"
	// entry allows any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAgeSeconds  int
}

// DefaultHeaders are sent when Config.AllowedHeaders is empty.
var DefaultHeaders = []string{"Content-Type", "Authorization"}

// Middleware returns HTTP middleware enforcing the policy. Preflight
// OPTIONS requests are answered directly and never reach the next
// handler.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAny = true
		}
		allowed[o] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	headerList := strings.Join(headers, ", ")

	maxAge := cfg.MaxAgeSeconds
	if maxAge <= 0 {
		maxAge = 600
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowed[origin]
				if allowAny || ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headerList)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
