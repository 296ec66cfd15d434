/*
middleware.go - Authentication middleware for chi

PURPOSE:
  RequireAuth verifies the request's token (x-access-token header, or
  Authorization with an optional Bearer prefix - the register frontends
  send the former) and stores the Identity in the request context.
  RequireAdmin additionally enforces the admin role; it must run inside
  RequireAuth.

SEE ALSO:
  - jwt.go: Token verification
  - api/server.go: Route wiring
*/
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey struct{}

var identityKey contextKey

// FromContext returns the verified identity stored by RequireAuth.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity stores an identity in a context. Test use only.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireAuth rejects requests without a valid token.
func RequireAuth(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				denyJSON(w, http.StatusUnauthorized, "authentication required")
				return
			}
			id, err := tm.Verify(token)
			if err != nil {
				denyJSON(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin rejects non-admin identities. Must be nested inside
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.IsAdmin() {
			denyJSON(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	if token := r.Header.Get("x-access-token"); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
