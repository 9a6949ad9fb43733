package transport

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type userKey struct{}

// UserResolver resolves the account owning a bearer token.
type UserResolver interface {
	ResolveToken(ctx context.Context, token string) (*session.User, error)
}

// UserFromContext returns the authenticated user from context, if present.
func UserFromContext(ctx context.Context) (*session.User, bool) {
	user, ok := ctx.Value(userKey{}).(*session.User)
	return user, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil && !errors.Is(err, repository.ErrInvalidCredentials) && !errors.Is(err, ErrUnauthorized) {
				writeMessage(w, http.StatusInternalServerError, "internal error")
				return
			}
			if err != nil || user == nil {
				writeMessage(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated users whose role is not listed.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "missing user")
				return
			}
			if !slices.Contains(roles, user.Role) {
				writeMessage(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
