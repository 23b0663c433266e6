package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName carries the anonymous browser-session identifier used
// only for visit deduplication, never for authentication.
const SessionCookieName = "mm_session"

// Session assigns a UUID session cookie when absent and puts the session
// id and client IP into the request context.
func Session() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID uuid.UUID

			cookie, err := r.Cookie(SessionCookieName)
			if err == nil {
				sessionID, err = uuid.Parse(cookie.Value)
			}
			if err != nil {
				sessionID = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sessionID.String(),
					Path:     "/",
					MaxAge:   int((30 * 24 * time.Hour).Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextKeySessionID, sessionID)
			ctx = context.WithValue(ctx, ContextKeyClientIP, r.RemoteAddr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
