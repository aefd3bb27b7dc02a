package db

import (
	"context"
	"errors"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// ClientFilter narrows client listings. OfficeID is mandatory for
// agent-scoped queries and empty for admin cross-office queries.
type ClientFilter struct {
	OfficeID string
	Segment  string
	Status   string
	Search   string
	Limit    int
	Offset   int
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := clientToModel(client)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ClientModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	client := clientFromModel(model)
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client domain.Client) error {
	if r.db == nil {
		return errDBUnavailable
	}
	// OfficeID is deliberately absent: a client's office is fixed at
	// creation.
	result := r.db.WithContext(ctx).Model(&ClientModel{}).Where("id = ?", client.ID).Updates(map[string]any{
		"first_name":         client.FirstName,
		"last_name":          client.LastName,
		"birth_date":         client.BirthDate,
		"email":              client.Email,
		"phone":              client.Phone,
		"whats_app":          client.WhatsApp,
		"national_id":        client.NationalID,
		"passport":           client.Passport,
		"country_code":       client.CountryCode,
		"residence":          client.Residence,
		"gender":             string(client.Gender),
		"acquisition_source": string(client.AcquisitionSource),
		"status":             string(client.Status),
		"current_segment":    client.CurrentSegment,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) List(ctx context.Context, filter ClientFilter) ([]domain.Client, int64, error) {
	if r.db == nil {
		return nil, 0, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&ClientModel{})
	if filter.OfficeID != "" {
		query = query.Where("office_id = ?", filter.OfficeID)
	}
	if filter.Segment != "" {
		query = query.Where("current_segment = ?", filter.Segment)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	var models []ClientModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}
	clients := make([]domain.Client, 0, len(models))
	for _, model := range models {
		clients = append(clients, clientFromModel(model))
	}
	return clients, total, nil
}

func (r *ClientRepository) FindByPassportInOffice(ctx context.Context, passport, officeID string) (*domain.Client, error) {
	return r.findOne(ctx, "passport = ? AND office_id = ?", passport, officeID)
}

func (r *ClientRepository) FindByNationalIDInOffice(ctx context.Context, nationalID, officeID string) (*domain.Client, error) {
	return r.findOne(ctx, "national_id = ? AND office_id = ?", nationalID, officeID)
}

func (r *ClientRepository) findOne(ctx context.Context, cond string, args ...any) (*domain.Client, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ClientModel
	err := r.db.WithContext(ctx).First(&model, append([]any{cond}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	client := clientFromModel(model)
	return &client, nil
}

// CountInOffice reports how many of the given client ids exist in the
// office. Services use it to validate campaign and message targets.
func (r *ClientRepository) CountInOffice(ctx context.Context, ids []string, officeID string) (int64, error) {
	if r.db == nil {
		return 0, errDBUnavailable
	}
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&ClientModel{}).
		Where("id IN ? AND office_id = ?", ids, officeID).
		Count(&count).Error
	return count, err
}

func (r *ClientRepository) CountByOffice(ctx context.Context, officeID string) (int64, error) {
	if r.db == nil {
		return 0, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&ClientModel{}).Where("office_id = ?", officeID).Count(&count).Error
	return count, err
}

func clientToModel(client domain.Client) ClientModel {
	return ClientModel{
		ID:                client.ID,
		FirstName:         client.FirstName,
		LastName:          client.LastName,
		BirthDate:         client.BirthDate,
		Email:             client.Email,
		Phone:             client.Phone,
		WhatsApp:          client.WhatsApp,
		NationalID:        client.NationalID,
		Passport:          client.Passport,
		CountryCode:       client.CountryCode,
		Residence:         client.Residence,
		Gender:            string(client.Gender),
		AcquisitionSource: string(client.AcquisitionSource),
		Status:            string(client.Status),
		CurrentSegment:    client.CurrentSegment,
		OfficeID:          client.OfficeID,
		CreatedAt:         client.CreatedAt,
	}
}

func clientFromModel(model ClientModel) domain.Client {
	return domain.Client{
		ID:                model.ID,
		FirstName:         model.FirstName,
		LastName:          model.LastName,
		BirthDate:         model.BirthDate,
		Email:             model.Email,
		Phone:             model.Phone,
		WhatsApp:          model.WhatsApp,
		NationalID:        model.NationalID,
		Passport:          model.Passport,
		CountryCode:       model.CountryCode,
		Residence:         model.Residence,
		Gender:            domain.Gender(model.Gender),
		AcquisitionSource: domain.AcquisitionSource(model.AcquisitionSource),
		Status:            domain.Status(model.Status),
		CurrentSegment:    model.CurrentSegment,
		OfficeID:          model.OfficeID,
		CreatedAt:         model.CreatedAt,
	}
}
