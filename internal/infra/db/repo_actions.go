package db

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type ActionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

func (r *ActionRepository) Create(ctx context.Context, action domain.MarketingAction) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := actionToModel(action)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *ActionRepository) GetByID(ctx context.Context, id string) (*domain.MarketingAction, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model MarketingActionModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	action := actionFromModel(model)
	return &action, nil
}

func (r *ActionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.MarketingAction, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []MarketingActionModel
	err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	actions := make([]domain.MarketingAction, 0, len(models))
	for _, model := range models {
		actions = append(actions, actionFromModel(model))
	}
	return actions, nil
}

func (r *ActionRepository) MarkSent(ctx context.Context, id string, sentAt *time.Time) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&MarketingActionModel{}).Where("id = ?", id).Update("sent_at", sentAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func actionToModel(action domain.MarketingAction) MarketingActionModel {
	return MarketingActionModel{
		ID:          action.ID,
		Title:       action.Title,
		ChannelType: string(action.ChannelType),
		Content:     action.Content,
		SentAt:      action.SentAt,
		CampaignID:  action.CampaignID,
		OfficeID:    action.OfficeID,
		CreatedByID: action.CreatedByID,
		CreatedAt:   action.CreatedAt,
	}
}

func actionFromModel(model MarketingActionModel) domain.MarketingAction {
	return domain.MarketingAction{
		ID:          model.ID,
		Title:       model.Title,
		ChannelType: domain.ChannelType(model.ChannelType),
		Content:     model.Content,
		SentAt:      model.SentAt,
		CampaignID:  model.CampaignID,
		OfficeID:    model.OfficeID,
		CreatedByID: model.CreatedByID,
		CreatedAt:   model.CreatedAt,
	}
}
