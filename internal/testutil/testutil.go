// Package testutil holds shared helpers for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hipis/internal/middleware"
	"hipis/internal/models"
)

// Fixed identities used across handler tests.
func Student(id string) middleware.Identity {
	return middleware.Identity{ID: id, Email: "student@college.edu", Role: models.RoleStudent}
}

func Counsellor(id string) middleware.Identity {
	return middleware.Identity{ID: id, Email: "counsellor@college.edu", Role: models.RoleCounsellor}
}

func Admin(id string) middleware.Identity {
	return middleware.Identity{ID: id, Email: "admin@college.edu", Role: models.RoleAdmin}
}

// Request builds an unauthenticated JSON request.
func Request(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AuthedRequest builds a JSON request carrying an authenticated identity, as
// if it had passed the bearer token gate.
func AuthedRequest(t *testing.T, method, target string, body interface{}, identity middleware.Identity) *http.Request {
	t.Helper()
	req := Request(t, method, target, body)
	return req.WithContext(middleware.WithIdentity(req.Context(), identity))
}

// Envelope mirrors the uniform response shape for decoding in tests.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// DecodeEnvelope parses a recorded response body.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}
