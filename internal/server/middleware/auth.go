// Package middleware provides HTTP middleware for caller identity.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aditya/slidein/internal/identity"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller extracted from an identity-provider
// token: a stable user ID plus the profile fields used for the sender name.
type Principal struct {
	UserID  string
	Profile identity.Profile
}

// TokenParser validates a bearer token and extracts the caller.
type TokenParser interface {
	ParsePrincipal(tokenString string) (*Principal, error)
}

// Identity attaches a Principal to the request context when a valid bearer
// token is present. Requests without one pass through untouched; endpoints
// that need a caller gate on RequirePrincipal.
func Identity(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if parser == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := parser.ParsePrincipal(token)
			if err != nil {
				// Invalid tokens are treated the same as absent ones.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePrincipal rejects requests whose context has no Principal. The
// rejection body uses the same {"error": ...} shape as the API handlers.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFrom extracts the caller from the request context.
func PrincipalFrom(r *http.Request) (*Principal, bool) {
	principal, ok := r.Context().Value(principalKey).(*Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Exposed for
// handler tests.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
