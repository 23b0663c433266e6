package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/auth"
)

// Auth requires a valid Bearer access token and injects merchant id and
// role into the request context. Requests without valid credentials get a
// 401 and never reach the handler.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := extractBearer(r); tok != "" {
				ctx, ok := authenticate(r.Context(), tok, jwtSecret)
				if ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
		})
	}
}

// OptionalAuth injects the principal when a valid token is present but
// lets anonymous requests through untouched. The public menu uses it to
// include the caller's favorites without requiring login.
func OptionalAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := extractBearer(r); tok != "" {
				if ctx, ok := authenticate(r.Context(), tok, jwtSecret); ok {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return authHeader[7:]
	}
	return ""
}

func authenticate(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return ctx, false
	}

	// Refresh tokens are not valid for resource access.
	if claims.TokenType != "access" {
		return ctx, false
	}

	merchantID, err := strconv.ParseInt(claims.MerchantID, 10, 64)
	if err != nil {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyMerchantID, merchantID)
	ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)
	return ctx, true
}
