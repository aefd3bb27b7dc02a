package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"

	"github.com/google/uuid"
)

type OfficeService struct {
	Offices OfficeRepository
	Users   UserRepository
	Clients ClientRepository
	Clock   func() time.Time
}

func (s *OfficeService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateOfficeInput struct {
	Name    string
	Address string
	City    string
	Phone   string
	Email   string
}

type UpdateOfficeInput struct {
	Name    string
	Address string
	City    string
	Phone   string
	Email   string
}

func (s *OfficeService) Create(ctx context.Context, input CreateOfficeInput) (*domain.ExchangeOffice, error) {
	if input.Name == "" || input.Email == "" {
		return nil, domain.Denial("Name and email are required")
	}
	exists, err := s.Offices.ExistsByEmail(ctx, input.Email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Denial("An exchange office with this email already exists")
	}
	office := domain.ExchangeOffice{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Address:   input.Address,
		City:      input.City,
		Phone:     input.Phone,
		Email:     input.Email,
		Status:    domain.StatusActive,
		CreatedAt: s.now(),
	}
	if err := s.Offices.Create(ctx, office); err != nil {
		return nil, err
	}
	return &office, nil
}

func (s *OfficeService) Details(ctx context.Context, id string) (*domain.ExchangeOffice, error) {
	return s.load(ctx, id)
}

// MyOffice resolves the office the agent principal belongs to.
func (s *OfficeService) MyOffice(ctx context.Context, principal domain.Principal) (*domain.ExchangeOffice, error) {
	if principal.OfficeID == "" {
		return nil, domain.Denial("Agent is not assigned to any exchange office")
	}
	return s.load(ctx, principal.OfficeID)
}

func (s *OfficeService) Update(ctx context.Context, id string, input UpdateOfficeInput) (*domain.ExchangeOffice, error) {
	office, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" && input.Address == "" && input.City == "" &&
		input.Phone == "" && input.Email == "" {
		return nil, domain.Denial("At least one field must be provided for update")
	}
	if input.Email != "" && input.Email != office.Email {
		exists, err := s.Offices.ExistsByEmail(ctx, input.Email, office.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Denial("An exchange office with this email already exists")
		}
		office.Email = input.Email
	}
	if input.Name != "" {
		office.Name = input.Name
	}
	if input.Address != "" {
		office.Address = input.Address
	}
	if input.City != "" {
		office.City = input.City
	}
	if input.Phone != "" {
		office.Phone = input.Phone
	}
	if err := s.Offices.Update(ctx, *office); err != nil {
		return nil, err
	}
	return office, nil
}

func (s *OfficeService) SetStatus(ctx context.Context, id, status string) (*domain.ExchangeOffice, error) {
	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, domain.Denial("Invalid status value: " + status)
	}
	office, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Offices.UpdateStatus(ctx, office.ID, parsed); err != nil {
		return nil, err
	}
	office.Status = parsed
	return office, nil
}

func (s *OfficeService) Delete(ctx context.Context, id string) error {
	office, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	users, err := s.Users.CountByOffice(ctx, office.ID)
	if err != nil {
		return err
	}
	clients, err := s.Clients.CountByOffice(ctx, office.ID)
	if err != nil {
		return err
	}
	if users > 0 || clients > 0 {
		return domain.Denial("Cannot delete exchange office: it has associated users or clients")
	}
	return s.Offices.Delete(ctx, office.ID)
}

func (s *OfficeService) List(ctx context.Context) ([]domain.ExchangeOffice, error) {
	return s.Offices.List(ctx)
}

func (s *OfficeService) load(ctx context.Context, id string) (*domain.ExchangeOffice, error) {
	if id == "" {
		return nil, domain.Denial("Exchange office ID is required")
	}
	office, err := s.Offices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Exchange office not found")
		}
		return nil, err
	}
	return office, nil
}
