package handlers

import (
	"context"
	"errors"
	"net/http"

	"hipis/internal/middleware"
	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/internal/service"
	"hipis/pkg/validator"
)

// AuthService is what the auth routes need from the service layer.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, role, university string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

// AuthHandler handles signup, login and profile requests
type AuthHandler struct {
	authSvc AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup registers a new account and returns the user with a fresh token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,min=8"`
		Role       string `json:"role" validate:"omitempty,oneof=student counsellor admin"`
		University string `json:"university"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authSvc.Signup(r.Context(), req.Name, req.Email, req.Password, req.Role, req.University)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondWithError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		respondStorageError(w, "auth.signup", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login authenticates by email and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validator.ValidateStruct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrUserInactive):
			respondWithError(w, http.StatusForbidden, "Account is deactivated")
		default:
			respondStorageError(w, "auth.login", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Profile returns the authenticated caller's own record.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	user, err := h.authSvc.Profile(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrInvalidID) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondStorageError(w, "auth.profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
