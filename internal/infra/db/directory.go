package db

import (
	"context"

	"exsys/internal/domain"
)

// PrincipalDirectory adapts the user repository to the gate's lookup
// contract. The gate re-reads the account on every request so status
// flips take effect immediately.
type PrincipalDirectory struct {
	Users *UserRepository
}

func (d *PrincipalDirectory) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	user, err := d.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	principal := user.Principal()
	return &principal, nil
}

var _ domain.PrincipalDirectory = (*PrincipalDirectory)(nil)
