package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/reelnotes/reelnotes/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the verified token claims
const ContextKeyClaims ContextKey = "claims"

// ClaimsFromContext returns the verified claims injected by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims, ok
}

// RequireAuth is middleware that validates a Bearer token from the
// Authorization header. Every verification failure (malformed token, bad
// signature, expiry) gets the same generic response.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			claims, err := s.issuer.Verify(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}
