package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/http/respond"
	"github.com/rsinnovation/hub-api/internal/models"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// UserFromContext returns the authenticated user placed by Authenticate.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// Authenticate resolves the bearer token to a live user record and stores it
// in the request context. Missing, invalid, or expired tokens and inactive
// accounts all produce the same 401 so nothing about the account leaks.
func Authenticate(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			user, err := authenticator.Resolve(r.Context(), token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "user not found or inactive")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request through iff the authenticated user's role
// meets the minimum threshold. Must be chained after Authenticate; an
// unauthenticated request fails 401 there before any role check runs.
func RequireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !user.Role.Meets(min) {
				respond.Error(w, http.StatusForbidden, fmt.Sprintf("insufficient permissions, required: %s", min))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}
