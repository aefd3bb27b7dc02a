package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"

	"github.com/google/uuid"
)

type CampaignService struct {
	Campaigns CampaignRepository
	Clients   ClientRepository
	Clock     func() time.Time
}

func (s *CampaignService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateCampaignInput struct {
	Title         string
	Description   string
	StartDate     time.Time
	EndDate       time.Time
	TargetClients []string
	// OfficeID is only honored for admins; agents always create
	// campaigns in their own office.
	OfficeID string
}

func (s *CampaignService) Create(ctx context.Context, principal domain.Principal, input CreateCampaignInput) (*domain.MarketingCampaign, error) {
	officeID, err := scope.BindOffice(principal, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, domain.Denial("Title is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, domain.Denial("End date must be after start date")
	}
	if err := s.checkTargets(ctx, input.TargetClients, officeID); err != nil {
		return nil, err
	}
	campaign := domain.MarketingCampaign{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Status:        domain.CampaignDraft,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		OfficeID:      officeID,
		CreatedByID:   principal.ID,
		TargetClients: input.TargetClients,
		CreatedAt:     s.now(),
	}
	if err := s.Campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (s *CampaignService) Details(ctx context.Context, principal domain.Principal, id string) (*domain.MarketingCampaign, error) {
	return s.loadScoped(ctx, principal, id)
}

func (s *CampaignService) List(ctx context.Context, principal domain.Principal) ([]domain.MarketingCampaign, error) {
	return s.Campaigns.ListByOffice(ctx, scope.ListFilter(principal))
}

func (s *CampaignService) SetStatus(ctx context.Context, principal domain.Principal, id, status string) (*domain.MarketingCampaign, error) {
	if !domain.ValidCampaignStatus(status) {
		return nil, domain.Denial("Invalid status value: " + status)
	}
	campaign, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	parsed := domain.CampaignStatus(status)
	if err := s.Campaigns.UpdateStatus(ctx, campaign.ID, parsed); err != nil {
		return nil, err
	}
	campaign.Status = parsed
	return campaign, nil
}

func (s *CampaignService) AddTargets(ctx context.Context, principal domain.Principal, id string, clientIDs []string) (*domain.MarketingCampaign, error) {
	campaign, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return nil, domain.Denial("At least one client ID is required")
	}
	if err := s.checkTargets(ctx, clientIDs, campaign.OfficeID); err != nil {
		return nil, err
	}
	if err := s.Campaigns.AddTargets(ctx, campaign.ID, clientIDs); err != nil {
		return nil, err
	}
	return s.Campaigns.GetByID(ctx, campaign.ID)
}

func (s *CampaignService) RemoveTargets(ctx context.Context, principal domain.Principal, id string, clientIDs []string) (*domain.MarketingCampaign, error) {
	campaign, err := s.loadScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return nil, domain.Denial("At least one client ID is required")
	}
	if err := s.Campaigns.RemoveTargets(ctx, campaign.ID, clientIDs); err != nil {
		return nil, err
	}
	return s.Campaigns.GetByID(ctx, campaign.ID)
}

func (s *CampaignService) loadScoped(ctx context.Context, principal domain.Principal, id string) (*domain.MarketingCampaign, error) {
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
	if err := scope.CheckWithReason(principal, campaign.OfficeID,
		"Access denied: campaign does not belong to your exchange office"); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) checkTargets(ctx context.Context, clientIDs []string, officeID string) error {
	if len(clientIDs) == 0 {
		return nil
	}
	count, err := s.Clients.CountInOffice(ctx, clientIDs, officeID)
	if err != nil {
		return err
	}
	if count != int64(len(clientIDs)) {
		return domain.Denial("One or more clients not found or do not belong to your exchange office")
	}
	return nil
}
