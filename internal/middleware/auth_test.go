package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hipis/internal/auth"
	"hipis/internal/config"
)

func newTokenService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(&config.JWTConfig{Secret: "test-secret", Expiration: time.Hour})
}

func okHandler(got *Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := IdentityFromRequest(r); ok && got != nil {
			*got = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(newTokenService(t))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(newTokenService(t))
	for _, header := range []string{"Bearer", "Basic abc", "Bearer ", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		mw.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(newTokenService(t))
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	tokens := newTokenService(t)
	mw := NewAuthMiddleware(tokens)

	token, err := tokens.Issue("u1", "student@college.edu", "student")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	var got Identity
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(okHandler(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.ID != "u1" || got.Email != "student@college.edu" || got.Role != "student" {
		t.Errorf("identity = %+v, want u1/student@college.edu/student", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokenService(t)
	mw := NewAuthMiddleware(tokens)

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"student", http.StatusForbidden},
		{"counsellor", http.StatusForbidden},
	}

	for _, tt := range tests {
		token, err := tokens.Issue("u1", "someone@college.edu", tt.role)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(RequireAdmin(okHandler(nil))).ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("role %q: status = %d, want %d", tt.role, rec.Code, tt.want)
		}
	}
}

func TestRequireRoleAdmitsAdmin(t *testing.T) {
	tokens := newTokenService(t)
	mw := NewAuthMiddleware(tokens)

	for _, tt := range []struct {
		role string
		want int
	}{
		{"counsellor", http.StatusOK},
		{"admin", http.StatusOK},
		{"student", http.StatusForbidden},
	} {
		token, err := tokens.Issue("u1", "someone@college.edu", tt.role)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/counselor/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(RequireRole("counsellor")(okHandler(nil))).ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("role %q: status = %d, want %d", tt.role, rec.Code, tt.want)
		}
	}
}
