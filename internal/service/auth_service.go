package service

import (
	"context"
	"errors"
	"fmt"

	"hipis/internal/auth"
	"hipis/internal/models"
	"hipis/internal/repository"
	"hipis/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("account is deactivated")
)

// AuthService handles signup, login and profile lookup.
type AuthService struct {
	userRepo *repository.UserRepository
	authSvc  *auth.Service
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo *repository.UserRepository, authSvc *auth.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		authSvc:  authSvc,
	}
}

// Signup registers a new account and issues its first token. The role
// defaults to student; a duplicate email surfaces as repository.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, name, email, password, role, university string) (*models.User, string, error) {
	if role == "" {
		role = models.RoleStudent
	}

	passwordHash, err := s.authSvc.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         validator.SanitizeString(name),
		Email:        validator.SanitizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		University:   validator.SanitizeString(university),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.authSvc.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are the same ErrInvalidCredentials; a deactivated account is
// ErrUserInactive only after the password checks out.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, validator.SanitizeEmail(email))
	if err == repository.ErrUserNotFound {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := s.authSvc.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	token, err := s.authSvc.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Profile returns the caller's own user record.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
