package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hipis/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, constructed once by Authenticate and
// threaded through the request context. Handlers never re-derive it from the
// token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// AuthMiddleware validates bearer tokens and attaches the caller identity.
type AuthMiddleware struct {
	tokens *auth.Service
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate is Gate 1: it requires a valid "Authorization: Bearer" token
// and stores the verified identity in the request context. Missing,
// malformed, expired and forged tokens are all the same 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		identity := Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromRequest retrieves the caller identity attached by Authenticate.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// respondWithError writes an envelope failure without importing the handlers
// package (middleware sits below it).
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
