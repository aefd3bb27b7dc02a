package db

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.MarketingCampaign) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := campaignToModel(campaign)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return createTargets(tx, campaign.ID, campaign.TargetClients)
	})
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.MarketingCampaign, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model MarketingCampaignModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	campaign := campaignFromModel(model)
	targets, err := r.listTargets(ctx, id)
	if err != nil {
		return nil, err
	}
	campaign.TargetClients = targets
	return &campaign, nil
}

func (r *CampaignRepository) ListByOffice(ctx context.Context, officeID string) ([]domain.MarketingCampaign, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&MarketingCampaignModel{}).Order("created_at DESC")
	if officeID != "" {
		query = query.Where("office_id = ?", officeID)
	}
	var models []MarketingCampaignModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	campaigns := make([]domain.MarketingCampaign, 0, len(models))
	for _, model := range models {
		campaigns = append(campaigns, campaignFromModel(model))
	}
	return campaigns, nil
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&MarketingCampaignModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) AddTargets(ctx context.Context, campaignID string, clientIDs []string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Skip clients already targeted so re-adding is idempotent.
		var existing []CampaignTargetModel
		if err := tx.Where("campaign_id = ? AND client_id IN ?", campaignID, clientIDs).Find(&existing).Error; err != nil {
			return err
		}
		present := make(map[string]bool, len(existing))
		for _, target := range existing {
			present[target.ClientID] = true
		}
		fresh := clientIDs[:0:0]
		for _, id := range clientIDs {
			if !present[id] {
				fresh = append(fresh, id)
			}
		}
		return createTargets(tx, campaignID, fresh)
	})
}

func (r *CampaignRepository) RemoveTargets(ctx context.Context, campaignID string, clientIDs []string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	if len(clientIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("campaign_id = ? AND client_id IN ?", campaignID, clientIDs).
		Delete(&CampaignTargetModel{}).Error
}

func (r *CampaignRepository) listTargets(ctx context.Context, campaignID string) ([]string, error) {
	var models []CampaignTargetModel
	err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("added_at").Find(&models).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(models))
	for _, model := range models {
		ids = append(ids, model.ClientID)
	}
	return ids, nil
}

func createTargets(tx *gorm.DB, campaignID string, clientIDs []string) error {
	if len(clientIDs) == 0 {
		return nil
	}
	now := time.Now()
	targets := make([]CampaignTargetModel, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		targets = append(targets, CampaignTargetModel{
			ID:         uuid.NewString(),
			CampaignID: campaignID,
			ClientID:   clientID,
			AddedAt:    now,
		})
	}
	return tx.Create(&targets).Error
}

func campaignToModel(campaign domain.MarketingCampaign) MarketingCampaignModel {
	return MarketingCampaignModel{
		ID:          campaign.ID,
		Title:       campaign.Title,
		Description: campaign.Description,
		Status:      string(campaign.Status),
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		OfficeID:    campaign.OfficeID,
		CreatedByID: campaign.CreatedByID,
		CreatedAt:   campaign.CreatedAt,
	}
}

func campaignFromModel(model MarketingCampaignModel) domain.MarketingCampaign {
	return domain.MarketingCampaign{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Status:      domain.CampaignStatus(model.Status),
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		OfficeID:    model.OfficeID,
		CreatedByID: model.CreatedByID,
		CreatedAt:   model.CreatedAt,
	}
}
