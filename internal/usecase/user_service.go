package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users   UserRepository
	Offices OfficeRepository
	Clock   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	OfficeID  string
}

type UpdateUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	OfficeID  string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.Denial("Email and password are required")
	}
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, domain.Denial("Invalid role value: " + input.Role)
	}
	exists, err := s.Users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Denial("A user with this email already exists")
	}
	if role == domain.RoleAgent && input.OfficeID == "" {
		return nil, domain.Denial("Exchange office ID is required for agents")
	}
	if input.OfficeID != "" {
		if _, err := s.Offices.GetByID(ctx, input.OfficeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Denial("Exchange office not found")
			}
			return nil, err
		}
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         role,
		Status:       domain.StatusActive,
		OfficeID:     input.OfficeID,
		CreatedAt:    s.now(),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Details(ctx context.Context, id string) (*domain.User, error) {
	return s.load(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.OfficeID != "" && input.OfficeID != user.OfficeID {
		if _, err := s.Offices.GetByID(ctx, input.OfficeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Denial("Exchange office not found")
			}
			return nil, err
		}
		user.OfficeID = input.OfficeID
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if err := s.Users.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetStatus(ctx context.Context, id, status string) (*domain.User, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.Denial("Invalid status value: " + status)
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateStatus(ctx, user.ID, parsed); err != nil {
		return nil, err
	}
	user.Status = parsed
	return user, nil
}

// ResetPassword is the administrative override: no knowledge of the
// current password is required.
func (s *UserService) ResetPassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return domain.Denial("New password is required")
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, user.ID, hash)
}

// ChangePassword lets a principal rotate their own password after
// proving the current one.
func (s *UserService) ChangePassword(ctx context.Context, principal domain.Principal, input ChangePasswordInput) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return domain.Denial("Current and new passwords are required")
	}
	user, err := s.load(ctx, principal.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return domain.Denial("Current password is incorrect")
	}
	hash, err := HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, user.ID, hash)
}

// List narrows to the caller's office for agents; admins see everyone.
func (s *UserService) List(ctx context.Context, principal domain.Principal) ([]domain.User, error) {
	return s.Users.List(ctx, scope.ListFilter(principal))
}

// OfficeAgents groups active agents under their exchange office.
type OfficeAgents struct {
	Office domain.ExchangeOffice
	Agents []domain.User
}

func (s *UserService) AgentsByOffice(ctx context.Context) ([]OfficeAgents, error) {
	offices, err := s.Offices.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make([]OfficeAgents, 0, len(offices))
	for _, office := range offices {
		users, err := s.Users.List(ctx, office.ID)
		if err != nil {
			return nil, err
		}
		agents := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.Role == domain.RoleAgent {
				agents = append(agents, u)
			}
		}
		grouped = append(grouped, OfficeAgents{Office: office, Agents: agents})
	}
	return grouped, nil
}

func (s *UserService) load(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.Denial("User ID is required")
	}
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("User not found")
		}
		return nil, err
	}
	return user, nil
}
