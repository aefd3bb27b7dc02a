package db

import (
	"context"
	"errors"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type CountryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CountryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	countries := make([]domain.Country, 0, len(models))
	for _, model := range models {
		countries = append(countries, domain.Country{
			Code:        model.Code,
			Name:        model.Name,
			Nationality: model.Nationality,
		})
	}
	return countries, nil
}

func (r *CountryRepository) GetByCode(ctx context.Context, code string) (*domain.Country, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CountryModel
	err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Country{Code: model.Code, Name: model.Name, Nationality: model.Nationality}, nil
}

type SegmentHistoryRepository struct {
	db *gorm.DB
}

func NewSegmentHistoryRepository(db *gorm.DB) *SegmentHistoryRepository {
	return &SegmentHistoryRepository{db: db}
}

func (r *SegmentHistoryRepository) Append(ctx context.Context, entry domain.SegmentHistoryEntry) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := SegmentHistoryModel{
		ID:        entry.ID,
		ClientID:  entry.ClientID,
		Segment:   entry.Segment,
		CreatedAt: entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *SegmentHistoryRepository) ListByClient(ctx context.Context, clientID string) ([]domain.SegmentHistoryEntry, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []SegmentHistoryModel
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at").Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]domain.SegmentHistoryEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, domain.SegmentHistoryEntry{
			ID:        model.ID,
			ClientID:  model.ClientID,
			Segment:   model.Segment,
			CreatedAt: model.CreatedAt,
		})
	}
	return entries, nil
}
