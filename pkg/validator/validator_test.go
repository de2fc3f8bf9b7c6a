package validator

import (
	"strings"
	"testing"
)

type signupPayload struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=student counsellor admin"`
}

func TestValidateStructValid(t *testing.T) {
	p := signupPayload{
		Name:     "Test Student",
		Email:    "student@college.edu",
		Password: "longenough",
		Role:     "student",
	}
	if err := ValidateStruct(p); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload signupPayload
		wantMsg string
	}{
		{
			name:    "missing name",
			payload: signupPayload{Email: "a@b.com", Password: "longenough"},
			wantMsg: "Name is required",
		},
		{
			name:    "bad email",
			payload: signupPayload{Name: "x", Email: "not-an-email", Password: "longenough"},
			wantMsg: "Email must be a valid email",
		},
		{
			name:    "short password",
			payload: signupPayload{Name: "x", Email: "a@b.com", Password: "short"},
			wantMsg: "Password must be at least 8 characters",
		},
		{
			name:    "unknown role",
			payload: signupPayload{Name: "x", Email: "a@b.com", Password: "longenough", Role: "owner"},
			wantMsg: "Role must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.payload)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("student@college.edu"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if err := ValidateEmail(""); err == nil {
		t.Error("empty email accepted")
	}
	if err := ValidateEmail("nope"); err == nil {
		t.Error("malformed email accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("8-char password rejected: %v", err)
	}
	if err := ValidatePassword("1234567"); err == nil {
		t.Error("7-char password accepted")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("empty password accepted")
	}
}

func TestSanitize(t *testing.T) {
	if got := SanitizeString("  hi\x00 "); got != "hi" {
		t.Errorf("SanitizeString() = %q, want %q", got, "hi")
	}
	if got := SanitizeEmail(" Student@College.EDU "); got != "student@college.edu" {
		t.Errorf("SanitizeEmail() = %q, want %q", got, "student@college.edu")
	}
}
