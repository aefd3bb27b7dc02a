package usecase

import (
	"context"
	"testing"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/token"
)

func newAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()
	tokens, err := token.NewService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return &AuthService{Users: users, Tokens: tokens}
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, status domain.Status) domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := domain.User{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         domain.RoleAgent,
		Status:       status,
		OfficeID:     "office-1",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "agent@exsys.test", "s3cret", domain.StatusActive)
	svc := newAuthService(t, users)

	result, err := svc.Login(context.Background(), LoginInput{Email: "agent@exsys.test", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", result.ExpiresIn)
	}
	if result.User.Email != "agent@exsys.test" || result.User.Role != domain.RoleAgent {
		t.Fatalf("unexpected principal: %+v", result.User)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@exsys.test", Password: "whatever"})
	if got := denialReason(t, err); got != "Invalid credentials" {
		t.Fatalf("reason = %q", got)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "agent@exsys.test", "s3cret", domain.StatusActive)
	svc := newAuthService(t, users)

	_, err := svc.Login(context.Background(), LoginInput{Email: "agent@exsys.test", Password: "wrong"})
	if got := denialReason(t, err); got != "Invalid credentials" {
		t.Fatalf("reason = %q", got)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "agent@exsys.test", "s3cret", domain.StatusInactive)
	svc := newAuthService(t, users)

	_, err := svc.Login(context.Background(), LoginInput{Email: "agent@exsys.test", Password: "s3cret"})
	if got := denialReason(t, err); got != "Account disabled" {
		t.Fatalf("reason = %q", got)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc := newAuthService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{})
	if got := denialReason(t, err); got != "Email and password are required" {
		t.Fatalf("reason = %q", got)
	}
}
