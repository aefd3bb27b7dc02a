package db

import (
	"context"
	"errors"

	"exsys/internal/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx domain.Transaction) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := transactionToModel(tx)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model TransactionModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tx := transactionFromModel(model)
	return &tx, nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx domain.Transaction) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&TransactionModel{}).Where("id = ?", tx.ID).Updates(map[string]any{
		"amount":           tx.Amount,
		"source_currency":  string(tx.SourceCurrency),
		"target_currency":  string(tx.TargetCurrency),
		"exchange_rate":    tx.ExchangeRate,
		"transaction_date": tx.TransactionDate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) ListByOffice(ctx context.Context, officeID string) ([]domain.Transaction, error) {
	return r.list(ctx, "office_id = ?", officeID)
}

func (r *TransactionRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	return r.list(ctx, "client_id = ?", clientID)
}

// ListAll is the admin cross-office view.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return r.list(ctx, "")
}

func (r *TransactionRepository) list(ctx context.Context, cond string, args ...any) ([]domain.Transaction, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	query := r.db.WithContext(ctx).Model(&TransactionModel{}).Order("transaction_date DESC")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	txs := make([]domain.Transaction, 0, len(models))
	for _, model := range models {
		txs = append(txs, transactionFromModel(model))
	}
	return txs, nil
}

func transactionToModel(tx domain.Transaction) TransactionModel {
	return TransactionModel{
		ID:              tx.ID,
		Amount:          tx.Amount,
		SourceCurrency:  string(tx.SourceCurrency),
		TargetCurrency:  string(tx.TargetCurrency),
		ExchangeRate:    tx.ExchangeRate,
		TransactionDate: tx.TransactionDate,
		ClientID:        tx.ClientID,
		OfficeID:        tx.OfficeID,
	}
}

func transactionFromModel(model TransactionModel) domain.Transaction {
	return domain.Transaction{
		ID:              model.ID,
		Amount:          model.Amount,
		SourceCurrency:  domain.Currency(model.SourceCurrency),
		TargetCurrency:  domain.Currency(model.TargetCurrency),
		ExchangeRate:    model.ExchangeRate,
		TransactionDate: model.TransactionDate,
		ClientID:        model.ClientID,
		OfficeID:        model.OfficeID,
	}
}
