package middleware

import (
	"net/http"
	"strings"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/visits"
)

// menuPathPrefix matches the public menu pages whose traffic is counted.
const menuPathPrefix = "/api/menu/"

// excludedPrefixes are never tracked: API write surfaces, auth, admin,
// static assets and internal tooling.
var excludedPrefixes = []string{
	"/api/auth",
	"/api/admin",
	"/api/products",
	"/api/favorites",
	"/api/user",
	"/api/billing",
	"/api/categories",
	"/assets",
	"/static",
	"/healthz",
}

// TrackVisits records deduplicated page visits for public menu reads.
// Tracking runs after the handler so it can never delay or fail the page
// request. Chain after Session, which supplies the session id.
func TrackVisits(tracker *visits.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if !shouldTrack(r) {
				return
			}

			sessionID, ok := SessionIDFromContext(r.Context())
			if !ok {
				return
			}

			tracker.Track(r.Context(), visits.Hit{
				SessionID: sessionID,
				Path:      r.URL.Path,
				IP:        ClientIPFromContext(r.Context()),
				UserAgent: r.UserAgent(),
				Referrer:  r.Referer(),
			})
		})
	}
}

func shouldTrack(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}

	path := r.URL.Path
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return strings.HasPrefix(path, menuPathPrefix)
}
