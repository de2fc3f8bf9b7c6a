package middleware

import (
	"net/http"

	"hipis/internal/models"
)

// RequireRole is Gate 2: it restricts a route group to a single role. The
// role comes from the token-derived identity, so this must run after
// Authenticate. Admins pass every role gate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromRequest(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if identity.Role != role && identity.Role != models.RoleAdmin {
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates the admin route group; only the admin role passes.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin)(next)
}
