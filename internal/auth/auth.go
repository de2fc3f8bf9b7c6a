package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hipis/internal/config"
)

// Issuer and Audience are fixed: tokens minted by unrelated services must
// never verify against this one.
const (
	Issuer   = "hipis"
	Audience = "hipis-app"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// wrong issuer or wrong audience. Callers treat them all as "not authenticated".
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload carried by every token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed identity tokens and hashes passwords.
type Service struct {
	secret     []byte
	expiration time.Duration
}

// NewService creates the token service. config.Validate already guarantees
// the secret is non-empty; an empty one here is a programming error.
func NewService(cfg *config.JWTConfig) *Service {
	if cfg.Secret == "" {
		panic("auth: signing secret must not be empty")
	}
	return &Service{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
	}
}

// Issue creates a signed, time-boxed token for a verified identity.
func (s *Service) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, expiry, issuer and audience together and
// returns the embedded claims. Any single mismatch yields ErrInvalidToken;
// Verify never distinguishes partial successes.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword verifies a password against a hash
func (s *Service) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
