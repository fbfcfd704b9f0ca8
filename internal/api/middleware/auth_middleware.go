package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/netpc/contacts-api/internal/identity/app"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const authenticatedAccountContextKey = ContextKey("authenticatedAccount")

// TokenValidator validates a bearer access token and returns its claims.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (app.Claims, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token.
func AuthMiddleware(validator TokenValidator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(r.Context(), "Authorization header missing")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.WarnContext(r.Context(), "Invalid Authorization header format")
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateAccessToken(parts[1])
			if err != nil {
				logger.WarnContext(r.Context(), "Token validation failed", "error", err)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authenticatedAccountContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the claims of the authenticated account, if any.
func AccountFromContext(ctx context.Context) (app.Claims, bool) {
	claims, ok := ctx.Value(authenticatedAccountContextKey).(app.Claims)
	return claims, ok
}
