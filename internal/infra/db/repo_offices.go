package db

import (
	"context"
	"errors"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type OfficeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) *OfficeRepository {
	return &OfficeRepository{db: db}
}

func (r *OfficeRepository) Create(ctx context.Context, office domain.ExchangeOffice) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := officeToModel(office)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *OfficeRepository) GetByID(ctx context.Context, id string) (*domain.ExchangeOffice, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ExchangeOfficeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	office := officeFromModel(model)
	return &office, nil
}

func (r *OfficeRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	if r.db == nil {
		return false, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&ExchangeOfficeModel{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OfficeRepository) Update(ctx context.Context, office domain.ExchangeOffice) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&ExchangeOfficeModel{}).Where("id = ?", office.ID).Updates(map[string]any{
		"name":    office.Name,
		"address": office.Address,
		"city":    office.City,
		"phone":   office.Phone,
		"email":   office.Email,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OfficeRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&ExchangeOfficeModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OfficeRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&ExchangeOfficeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OfficeRepository) List(ctx context.Context) ([]domain.ExchangeOffice, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ExchangeOfficeModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	offices := make([]domain.ExchangeOffice, 0, len(models))
	for _, model := range models {
		offices = append(offices, officeFromModel(model))
	}
	return offices, nil
}

func officeToModel(office domain.ExchangeOffice) ExchangeOfficeModel {
	return ExchangeOfficeModel{
		ID:        office.ID,
		Name:      office.Name,
		Address:   office.Address,
		City:      office.City,
		Phone:     office.Phone,
		Email:     office.Email,
		Status:    string(office.Status),
		CreatedAt: office.CreatedAt,
	}
}

func officeFromModel(model ExchangeOfficeModel) domain.ExchangeOffice {
	return domain.ExchangeOffice{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		City:      model.City,
		Phone:     model.Phone,
		Email:     model.Email,
		Status:    domain.Status(model.Status),
		CreatedAt: model.CreatedAt,
	}
}
