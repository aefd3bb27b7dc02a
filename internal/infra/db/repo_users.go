package db

import (
	"context"
	"errors"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := userToModel(user)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, model)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.db == nil {
		return false, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := userToModel(user)
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":      model.Email,
		"first_name": model.FirstName,
		"last_name":  model.LastName,
		"phone":      model.Phone,
		"role":       model.Role,
		"office_id":  model.OfficeID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns users, constrained to one office when officeID is set.
func (r *UserRepository) List(ctx context.Context, officeID string) ([]domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&UserModel{}).Order("created_at")
	if officeID != "" {
		query = query.Where("office_id = ?", officeID)
	}
	var models []UserModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(models))
	for _, model := range models {
		user, err := r.hydrate(ctx, model)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *UserRepository) CountByOffice(ctx context.Context, officeID string) (int64, error) {
	if r.db == nil {
		return 0, errDBUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("office_id = ?", officeID).Count(&count).Error
	return count, err
}

func (r *UserRepository) hydrate(ctx context.Context, model UserModel) (*domain.User, error) {
	user := userFromModel(model)
	if user.OfficeID != "" {
		var office ExchangeOfficeModel
		err := r.db.WithContext(ctx).First(&office, "id = ?", user.OfficeID).Error
		if err == nil {
			user.OfficeName = office.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return &user, nil
}

func userToModel(user domain.User) UserModel {
	model := UserModel{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		Role:         string(user.Role),
		Status:       string(user.Status),
		CreatedAt:    user.CreatedAt,
	}
	if user.OfficeID != "" {
		officeID := user.OfficeID
		model.OfficeID = &officeID
	}
	return model
}

func userFromModel(model UserModel) domain.User {
	user := domain.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        model.Phone,
		Role:         domain.Role(model.Role),
		Status:       domain.Status(model.Status),
		CreatedAt:    model.CreatedAt,
	}
	if model.OfficeID != nil {
		user.OfficeID = *model.OfficeID
	}
	return user
}
