package db

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuickMessageRepository struct {
	db *gorm.DB
}

func NewQuickMessageRepository(db *gorm.DB) *QuickMessageRepository {
	return &QuickMessageRepository{db: db}
}

func (r *QuickMessageRepository) Create(ctx context.Context, msg domain.QuickMessage) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := quickMessageToModel(msg)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		if len(msg.TargetClients) == 0 {
			return nil
		}
		now := time.Now()
		targets := make([]QuickMessageTargetModel, 0, len(msg.TargetClients))
		for _, clientID := range msg.TargetClients {
			targets = append(targets, QuickMessageTargetModel{
				ID:             uuid.NewString(),
				QuickMessageID: msg.ID,
				ClientID:       clientID,
				AddedAt:        now,
			})
		}
		return tx.Create(&targets).Error
	})
}

func (r *QuickMessageRepository) GetByID(ctx context.Context, id string) (*domain.QuickMessage, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model QuickMessageModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	msg := quickMessageFromModel(model)
	targets, err := r.listTargets(ctx, id)
	if err != nil {
		return nil, err
	}
	msg.TargetClients = targets
	return &msg, nil
}

func (r *QuickMessageRepository) ListByOffice(ctx context.Context, officeID string) ([]domain.QuickMessage, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []QuickMessageModel
	err := r.db.WithContext(ctx).Where("office_id = ?", officeID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	msgs := make([]domain.QuickMessage, 0, len(models))
	for _, model := range models {
		msgs = append(msgs, quickMessageFromModel(model))
	}
	return msgs, nil
}

func (r *QuickMessageRepository) MarkSent(ctx context.Context, id string, sentAt *time.Time) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&QuickMessageModel{}).Where("id = ?", id).Update("sent_at", sentAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuickMessageRepository) listTargets(ctx context.Context, quickMessageID string) ([]string, error) {
	var models []QuickMessageTargetModel
	err := r.db.WithContext(ctx).Where("quick_message_id = ?", quickMessageID).Order("added_at").Find(&models).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(models))
	for _, model := range models {
		ids = append(ids, model.ClientID)
	}
	return ids, nil
}

func quickMessageToModel(msg domain.QuickMessage) QuickMessageModel {
	return QuickMessageModel{
		ID:          msg.ID,
		Title:       msg.Title,
		ChannelType: string(msg.ChannelType),
		Content:     msg.Content,
		SentAt:      msg.SentAt,
		OfficeID:    msg.OfficeID,
		CreatedByID: msg.CreatedByID,
		CreatedAt:   msg.CreatedAt,
	}
}

func quickMessageFromModel(model QuickMessageModel) domain.QuickMessage {
	return domain.QuickMessage{
		ID:          model.ID,
		Title:       model.Title,
		ChannelType: domain.ChannelType(model.ChannelType),
		Content:     model.Content,
		SentAt:      model.SentAt,
		OfficeID:    model.OfficeID,
		CreatedByID: model.CreatedByID,
		CreatedAt:   model.CreatedAt,
	}
}
