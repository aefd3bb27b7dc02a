package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/token"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and self-profile lookup. Login reports
// distinct reasons for bad credentials and disabled accounts; after
// login the gate deliberately collapses those into one message.
type AuthService struct {
	Users  UserRepository
	Tokens *token.Service
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      domain.Principal
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.Denial("Email and password are required")
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.Denial("Invalid credentials")
	}
	if user.Status != domain.StatusActive {
		return nil, domain.Denial("Account disabled")
	}

	signed, err := s.Tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     signed,
		ExpiresIn: int64(s.Tokens.TTL() / time.Second),
		User:      user.Principal(),
	}, nil
}

// HashPassword is used at user creation and password changes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
