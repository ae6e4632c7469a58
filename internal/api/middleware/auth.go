package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/borga-dev/borga/internal/api/apierr"
	"github.com/borga-dev/borga/internal/services/auth"
)

type contextKey string

const usernameContextKey contextKey = "username"

// Auth creates authentication middleware. It resolves the Bearer token to a
// username through the token registry and stores it in the request context.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			username, err := authService.ResolveToken(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetUsername returns the authenticated username from the request context,
// or the empty string if the auth middleware did not run
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}

// MustGetUsername returns the authenticated username or panics
func MustGetUsername(ctx context.Context) string {
	username := GetUsername(ctx)
	if username == "" {
		panic("no username in context - auth middleware not applied?")
	}
	return username
}
