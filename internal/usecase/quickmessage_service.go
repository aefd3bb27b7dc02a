package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"

	"github.com/google/uuid"
)

type QuickMessageService struct {
	Messages QuickMessageRepository
	Clients  ClientRepository
	Sender   domain.MessageSender
	Clock    func() time.Time
}

func (s *QuickMessageService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateQuickMessageInput struct {
	Title         string
	ChannelType   string
	Content       string
	TargetClients []string
	OfficeID      string
}

func (s *QuickMessageService) Create(ctx context.Context, principal domain.Principal, input CreateQuickMessageInput) (*domain.QuickMessage, error) {
	officeID, err := scope.BindOffice(principal, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" || input.Content == "" {
		return nil, domain.Denial("Title and content are required")
	}
	if !domain.ValidChannelType(input.ChannelType) {
		return nil, domain.Denial("Invalid channel type: " + input.ChannelType)
	}
	if len(input.TargetClients) == 0 {
		return nil, domain.Denial("At least one client ID is required")
	}
	count, err := s.Clients.CountInOffice(ctx, input.TargetClients, officeID)
	if err != nil {
		return nil, err
	}
	if count != int64(len(input.TargetClients)) {
		return nil, domain.Denial("One or more clients not found or do not belong to the exchange office")
	}
	msg := domain.QuickMessage{
		ID:            uuid.NewString(),
		Title:         input.Title,
		ChannelType:   domain.ChannelType(input.ChannelType),
		Content:       input.Content,
		OfficeID:      officeID,
		CreatedByID:   principal.ID,
		TargetClients: input.TargetClients,
		CreatedAt:     s.now(),
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *QuickMessageService) Details(ctx context.Context, principal domain.Principal, id string) (*domain.QuickMessage, error) {
	return s.loadScoped(ctx, principal, id)
}

func (s *QuickMessageService) List(ctx context.Context, principal domain.Principal) ([]domain.QuickMessage, error) {
	return s.Messages.ListByOffice(ctx, scope.ListFilter(principal))
}

func (s *QuickMessageService) Send(ctx context.Context, principal domain.Principal, id string) (*domain.QuickMessage, error) {
	msg, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if msg.SentAt != nil {
		return nil, domain.Denial("QuickMessage has already been sent")
	}
	if s.Sender != nil {
		for _, clientID := range msg.TargetClients {
			err := s.Sender.Send(ctx, domain.OutboundMessage{
				Channel:     msg.ChannelType,
				ClientID:    clientID,
				OfficeID:    msg.OfficeID,
				Title:       msg.Title,
				Content:     msg.Content,
				ReferenceID: msg.ID,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	sentAt := s.now()
	if err := s.Messages.MarkSent(ctx, msg.ID, &sentAt); err != nil {
		return nil, err
	}
	msg.SentAt = &sentAt
	return msg, nil
}

func (s *QuickMessageService) loadScoped(ctx context.Context, principal domain.Principal, id string) (*domain.QuickMessage, error) {
	if id == "" {
		return nil, domain.Denial("QuickMessage ID is required")
	}
	msg, err := s.Messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("QuickMessage not found")
		}
		return nil, err
	}
	if err := scope.Check(principal, msg.OfficeID); err != nil {
		return nil, err
	}
	return msg, nil
}
