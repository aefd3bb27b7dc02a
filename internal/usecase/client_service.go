package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"
	"exsys/internal/infra/db"

	"github.com/google/uuid"
)

type ClientService struct {
	Clients  ClientRepository
	Segments SegmentHistoryRepository
	Offices  OfficeRepository
	Clock    func() time.Time
}

func (s *ClientService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateClientInput struct {
	FirstName         string
	LastName          string
	BirthDate         *time.Time
	Email             string
	Phone             string
	WhatsApp          string
	NationalID        string
	Passport          string
	CountryCode       string
	Residence         string
	Gender            string
	AcquisitionSource string
	CurrentSegment    string
	// OfficeID in the request body is ignored for agents; the client is
	// always bound to the creating agent's own office.
	OfficeID string
}

type UpdateClientInput struct {
	FirstName      string
	LastName       string
	BirthDate      *time.Time
	Email          string
	Phone          string
	WhatsApp       string
	NationalID     string
	Passport       string
	CountryCode    string
	Residence      string
	Gender         string
	CurrentSegment string
	Status         string
}

type ClientListInput struct {
	Segment string
	Status  string
	Search  string
	Limit   int
	Offset  int
	// OfficeID is honored for admins only; agents are always narrowed
	// to their own office.
	OfficeID string
}

type ClientList struct {
	Clients []domain.Client
	Total   int64
}

func (s *ClientService) Create(ctx context.Context, principal domain.Principal, input CreateClientInput) (*domain.Client, error) {
	officeID, err := scope.BindOffice(principal, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, domain.Denial("Missing required fields: firstName, lastName")
	}
	if err := s.checkUniqueness(ctx, input.Passport, input.NationalID, officeID); err != nil {
		return nil, err
	}

	client := domain.Client{
		ID:                uuid.NewString(),
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		BirthDate:         input.BirthDate,
		Email:             input.Email,
		Phone:             input.Phone,
		WhatsApp:          input.WhatsApp,
		NationalID:        input.NationalID,
		Passport:          input.Passport,
		CountryCode:       input.CountryCode,
		Residence:         input.Residence,
		Gender:            domain.Gender(input.Gender),
		AcquisitionSource: domain.AcquisitionSource(input.AcquisitionSource),
		Status:            domain.StatusActive,
		CurrentSegment:    input.CurrentSegment,
		OfficeID:          officeID,
		CreatedAt:         s.now(),
	}
	if err := s.Clients.Create(ctx, client); err != nil {
		return nil, err
	}
	if client.CurrentSegment != "" {
		if err := s.appendSegment(ctx, client.ID, client.CurrentSegment); err != nil {
			return nil, err
		}
	}
	return &client, nil
}

func (s *ClientService) Update(ctx context.Context, principal domain.Principal, clientID string, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only update clients from your own exchange office"); err != nil {
		return nil, err
	}
	if input.Passport != "" && input.Passport != client.Passport {
		if err := s.checkUniqueness(ctx, input.Passport, "", client.OfficeID); err != nil {
			return nil, err
		}
	}
	if input.NationalID != "" && input.NationalID != client.NationalID {
		if err := s.checkUniqueness(ctx, "", input.NationalID, client.OfficeID); err != nil {
			return nil, err
		}
	}

	segmentChanged := input.CurrentSegment != "" && input.CurrentSegment != client.CurrentSegment
	applyClientUpdate(client, input)
	if err := s.Clients.Update(ctx, *client); err != nil {
		return nil, err
	}
	if segmentChanged {
		if err := s.appendSegment(ctx, client.ID, client.CurrentSegment); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, principal domain.Principal, clientID string) error {
	client, err := s.load(ctx, clientID)
	if err != nil {
		return err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only delete clients from your own exchange office"); err != nil {
		return err
	}
	return s.Clients.Delete(ctx, clientID)
}

func (s *ClientService) Details(ctx context.Context, principal domain.Principal, clientID string) (*domain.Client, error) {
	client, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only view clients from your own exchange office"); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, principal domain.Principal, input ClientListInput) (*ClientList, error) {
	officeID := scope.ListFilter(principal)
	if officeID == "" {
		officeID = input.OfficeID
	}
	clients, total, err := s.Clients.List(ctx, db.ClientFilter{
		OfficeID: officeID,
		Segment:  input.Segment,
		Status:   input.Status,
		Search:   input.Search,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ClientList{Clients: clients, Total: total}, nil
}

// OfficeClients is one office's client roster in the grouped listing.
type OfficeClients struct {
	Office  domain.ExchangeOffice
	Clients []domain.Client
	Total   int64
}

func (s *ClientService) GroupedByOffice(ctx context.Context) ([]OfficeClients, error) {
	offices, err := s.Offices.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make([]OfficeClients, 0, len(offices))
	for _, office := range offices {
		clients, total, err := s.Clients.List(ctx, db.ClientFilter{OfficeID: office.ID})
		if err != nil {
			return nil, err
		}
		grouped = append(grouped, OfficeClients{Office: office, Clients: clients, Total: total})
	}
	return grouped, nil
}

func (s *ClientService) SegmentHistory(ctx context.Context, principal domain.Principal, clientID string) ([]domain.SegmentHistoryEntry, error) {
	client, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only view clients from your own exchange office"); err != nil {
		return nil, err
	}
	return s.Segments.ListByClient(ctx, clientID)
}

func (s *ClientService) load(ctx context.Context, clientID string) (*domain.Client, error) {
	if clientID == "" {
		return nil, domain.Denial("Client ID is required")
	}
	client, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Client not found")
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) checkUniqueness(ctx context.Context, passport, nationalID, officeID string) error {
	if passport != "" {
		existing, err := s.Clients.FindByPassportInOffice(ctx, passport, officeID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.Denial("A client with this passport number already exists in this exchange office")
		}
	}
	if nationalID != "" {
		existing, err := s.Clients.FindByNationalIDInOffice(ctx, nationalID, officeID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.Denial("A client with this national ID already exists in this exchange office")
		}
	}
	return nil
}

func (s *ClientService) appendSegment(ctx context.Context, clientID, segment string) error {
	return s.Segments.Append(ctx, domain.SegmentHistoryEntry{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Segment:   segment,
		CreatedAt: s.now(),
	})
}

func applyClientUpdate(client *domain.Client, input UpdateClientInput) {
	if input.FirstName != "" {
		client.FirstName = input.FirstName
	}
	if input.LastName != "" {
		client.LastName = input.LastName
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}
	if input.Email != "" {
		client.Email = input.Email
	}
	if input.Phone != "" {
		client.Phone = input.Phone
	}
	if input.WhatsApp != "" {
		client.WhatsApp = input.WhatsApp
	}
	if input.NationalID != "" {
		client.NationalID = input.NationalID
	}
	if input.Passport != "" {
		client.Passport = input.Passport
	}
	if input.CountryCode != "" {
		client.CountryCode = input.CountryCode
	}
	if input.Residence != "" {
		client.Residence = input.Residence
	}
	if input.Gender != "" {
		client.Gender = domain.Gender(input.Gender)
	}
	if input.CurrentSegment != "" {
		client.CurrentSegment = input.CurrentSegment
	}
	if input.Status != "" {
		client.Status = domain.Status(input.Status)
	}
}
