// Package middleware (app-side) authenticates requests: it resolves the
// bearer token to a full user record and stores it in the request context.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/pkg/response"
)

// userKey is the unexported context key for the authenticated user.
type userKey struct{}

// CurrentUser returns the authenticated user stored by RequireUser.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok
}

// RequireUser rejects requests without a valid bearer token, resolves the
// token's email claim to a user record, and injects it into the context.
// Token problems are 401; a token whose user no longer exists is 404.
func RequireUser(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized(w)
				return
			}

			user, err := auth.ResolveUser(r.Context(), token)
			if err != nil {
				response.FromError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
