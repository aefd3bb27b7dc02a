package domain

import (
	"context"
	"time"
)

// Principal is the authenticated caller for one request. It is rebuilt
// from the token subject on every request and never cached, so a status
// change takes effect on the next request.
type Principal struct {
	ID         string
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	Role       Role
	Status     Status
	OfficeID   string
	OfficeName string
	CreatedAt  time.Time
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsAgent() bool {
	return p.Role == RoleAgent
}

// PrincipalDirectory resolves a principal by its login identifier.
type PrincipalDirectory interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
}

// TokenVerifier extracts the subject claim from a raw Authorization
// header value. All failure modes normalize to ok=false.
type TokenVerifier interface {
	Subject(authorizationHeader string) (string, bool)
}
