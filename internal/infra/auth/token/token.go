// Package token issues and verifies the bearer tokens the gate accepts.
// Tokens are HS256-signed with a process-wide secret and carry the
// principal's email as the subject the directory resolves.
package token

import (
	"errors"
	"strings"
	"time"

	"exsys/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock fixes the issuance clock; tests use it to mint expired tokens.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Issue signs a token for an authenticated user.
func (s *Service) Issue(user domain.User) (string, error) {
	issuedAt := s.now()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Subject validates a raw Authorization header value and returns the
// email subject claim. Missing or malformed headers, bad signatures,
// expired tokens and structural decode failures all yield ok=false;
// nothing escapes as an error.
func (s *Service) Subject(authorizationHeader string) (string, bool) {
	raw, ok := bearerToken(authorizationHeader)
	if !ok {
		return "", false
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", false
	}
	if claims.Email == "" {
		return "", false
	}
	return claims.Email, true
}

// bearerToken strips the Bearer scheme, case-insensitively, from an
// Authorization header value.
func bearerToken(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(value[len("bearer "):])
	if raw == "" {
		return "", false
	}
	return raw, true
}
