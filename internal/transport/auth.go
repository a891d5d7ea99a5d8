package transport

import (
	"context"
	"net/http"

	"github.com/qiuyou/courtside/internal/auth"
	"github.com/qiuyou/courtside/internal/i18n"
)

// UserResolver resolves a user ID from a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// UserFromContext returns the authenticated user ID, if present.
func UserFromContext(ctx context.Context) (string, bool) {
	return auth.UserIDFrom(ctx)
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return authenticate(resolver, true)
}

// OptionalAuthMiddleware attaches the user when a valid token is presented
// and lets anonymous requests through.
func OptionalAuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return authenticate(resolver, false)
}

func authenticate(resolver UserResolver, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" && !required {
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.BearerToken(header)
			if err != nil {
				writeProblem(w, r, i18n.Unauthorized)
				return
			}

			userID, err := resolver.ResolveUser(r.Context(), token)
			if err != nil || userID == "" {
				writeProblem(w, r, i18n.Unauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// NoAuthMiddleware acts as defaultUser on every request.
func NoAuthMiddleware(defaultUser string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), defaultUser)))
		})
	}
}

// requireUser returns the caller or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		writeProblem(w, r, i18n.Unauthorized)
		return "", false
	}
	return userID, true
}
