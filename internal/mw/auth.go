package mw

import (
	"context"
	"net/http"
	"strings"

	"vendorhub/internal/service"
)

type contextKey string

const (
	UserCtxKey   contextKey = "user_id"
	VendorCtxKey contextKey = "vendor_id"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*service.Claims, error)
}

func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ParseToken(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, VendorCtxKey, claims.VendorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user set by AuthMiddleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserCtxKey).(string)
	return id, ok && id != ""
}

// VendorID returns the vendor the authenticated user manages.
func VendorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(VendorCtxKey).(string)
	return id, ok && id != ""
}
