package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"

	"github.com/google/uuid"
)

type ActionService struct {
	Actions   ActionRepository
	Campaigns CampaignRepository
	Sender    domain.MessageSender
	Clock     func() time.Time
}

func (s *ActionService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateActionInput struct {
	Title       string
	ChannelType string
	Content     string
	CampaignID  string
}

func (s *ActionService) Create(ctx context.Context, principal domain.Principal, input CreateActionInput) (*domain.MarketingAction, error) {
	if input.Title == "" || input.Content == "" {
		return nil, domain.Denial("Title and content are required")
	}
	if !domain.ValidChannelType(input.ChannelType) {
		return nil, domain.Denial("Invalid channel type: " + input.ChannelType)
	}
	campaign, err := s.loadCampaign(ctx, input.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, campaign.OfficeID,
		"Access denied: campaign does not belong to your exchange office"); err != nil {
		return nil, err
	}
	action := domain.MarketingAction{
		ID:          uuid.NewString(),
		Title:       input.Title,
		ChannelType: domain.ChannelType(input.ChannelType),
		Content:     input.Content,
		CampaignID:  campaign.ID,
		OfficeID:    campaign.OfficeID,
		CreatedByID: principal.ID,
		CreatedAt:   s.now(),
	}
	if err := s.Actions.Create(ctx, action); err != nil {
		return nil, err
	}
	return &action, nil
}

func (s *ActionService) Details(ctx context.Context, principal domain.Principal, id string) (*domain.MarketingAction, error) {
	return s.loadScoped(ctx, principal, id)
}

func (s *ActionService) ListByCampaign(ctx context.Context, principal domain.Principal, campaignID string) ([]domain.MarketingAction, error) {
	campaign, err := s.loadCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, campaign.OfficeID,
		"Access denied: campaign does not belong to your exchange office"); err != nil {
		return nil, err
	}
	return s.Actions.ListByCampaign(ctx, campaignID)
}

// Send dispatches the action to the campaign's targets over the
// configured channel and stamps the action sent.
func (s *ActionService) Send(ctx context.Context, principal domain.Principal, id string) (*domain.MarketingAction, error) {
	action, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if action.SentAt != nil {
		return nil, domain.Denial("MarketingAction has already been sent")
	}
	campaign, err := s.loadCampaign(ctx, action.CampaignID)
	if err != nil {
		return nil, err
	}
	if s.Sender != nil {
		for _, clientID := range campaign.TargetClients {
			err := s.Sender.Send(ctx, domain.OutboundMessage{
				Channel:     action.ChannelType,
				ClientID:    clientID,
				OfficeID:    action.OfficeID,
				Title:       action.Title,
				Content:     action.Content,
				ReferenceID: action.ID,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	sentAt := s.now()
	if err := s.Actions.MarkSent(ctx, action.ID, &sentAt); err != nil {
		return nil, err
	}
	action.SentAt = &sentAt
	return action, nil
}

func (s *ActionService) loadScoped(ctx context.Context, principal domain.Principal, id string) (*domain.MarketingAction, error) {
	if id == "" {
		return nil, domain.Denial("MarketingAction ID is required")
	}
	action, err := s.Actions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("MarketingAction not found")
		}
		return nil, err
	}
	if err := scope.Check(principal, action.OfficeID); err != nil {
		return nil, err
	}
	return action, nil
}

func (s *ActionService) loadCampaign(ctx context.Context, id string) (*domain.MarketingCampaign, error) {
	if id == "" {
		return nil, domain.Denial("Marketing campaign ID is required")
	}
	campaign, err := s.Campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Marketing campaign not found")
		}
		return nil, err
	}
	return campaign, nil
}
