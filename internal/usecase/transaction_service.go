package usecase

import (
	"context"
	"errors"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/scope"

	"github.com/google/uuid"
)

type TransactionService struct {
	Transactions TransactionRepository
	Clients      ClientRepository
	Clock        func() time.Time
}

func (s *TransactionService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateTransactionInput struct {
	Amount          float64
	SourceCurrency  string
	TargetCurrency  string
	ExchangeRate    float64
	TransactionDate *time.Time
	ClientID        string
}

type UpdateTransactionInput struct {
	Amount          *float64
	SourceCurrency  string
	TargetCurrency  string
	ExchangeRate    *float64
	TransactionDate *time.Time
}

func (s *TransactionService) Create(ctx context.Context, principal domain.Principal, input CreateTransactionInput) (*domain.Transaction, error) {
	if principal.IsAgent() && principal.OfficeID == "" {
		return nil, domain.Denial("Agent must be assigned to an exchange office")
	}
	if input.ClientID == "" {
		return nil, domain.Denial("Client ID is required")
	}
	if input.Amount <= 0 {
		return nil, domain.Denial("Amount must be greater than zero")
	}
	src, ok := domain.ParseCurrency(input.SourceCurrency)
	if !ok {
		return nil, domain.Denial("Invalid source currency: " + input.SourceCurrency)
	}
	dst, ok := domain.ParseCurrency(input.TargetCurrency)
	if !ok {
		return nil, domain.Denial("Invalid target currency: " + input.TargetCurrency)
	}
	if src == dst {
		return nil, domain.Denial("Source and target currencies must be different")
	}

	client, err := s.Clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Client not found")
		}
		return nil, err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only create transactions for clients of your exchange office"); err != nil {
		return nil, err
	}

	date := s.now()
	if input.TransactionDate != nil {
		date = *input.TransactionDate
	}
	tx := domain.Transaction{
		ID:              uuid.NewString(),
		Amount:          input.Amount,
		SourceCurrency:  src,
		TargetCurrency:  dst,
		ExchangeRate:    input.ExchangeRate,
		TransactionDate: date,
		ClientID:        client.ID,
		OfficeID:        client.OfficeID,
	}
	if err := s.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionService) Details(ctx context.Context, principal domain.Principal, id string) (*domain.Transaction, error) {
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scope.CheckWithReason(principal, tx.OfficeID,
		"You can only view transactions of your exchange office"); err != nil {
		return nil, err
	}
	return tx, nil
}

// SharedDetails backs the unauthenticated transaction receipt lookup.
// No principal is involved: knowledge of the transaction id is the
// capability.
func (s *TransactionService) SharedDetails(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.load(ctx, id)
}

func (s *TransactionService) Update(ctx context.Context, principal domain.Principal, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() {
		return nil, domain.Denial("Only administrators can update transactions")
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, domain.Denial("Amount must be greater than zero")
		}
		tx.Amount = *input.Amount
	}
	if input.SourceCurrency != "" {
		src, ok := domain.ParseCurrency(input.SourceCurrency)
		if !ok {
			return nil, domain.Denial("Invalid source currency: " + input.SourceCurrency)
		}
		tx.SourceCurrency = src
	}
	if input.TargetCurrency != "" {
		dst, ok := domain.ParseCurrency(input.TargetCurrency)
		if !ok {
			return nil, domain.Denial("Invalid target currency: " + input.TargetCurrency)
		}
		tx.TargetCurrency = dst
	}
	if tx.SourceCurrency == tx.TargetCurrency {
		return nil, domain.Denial("Source and target currencies must be different")
	}
	if input.ExchangeRate != nil {
		tx.ExchangeRate = *input.ExchangeRate
	}
	if input.TransactionDate != nil {
		tx.TransactionDate = *input.TransactionDate
	}
	if err := s.Transactions.Update(ctx, *tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if !principal.IsAdmin() {
		return domain.Denial("Only administrators can delete transactions")
	}
	return s.Transactions.Delete(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, principal domain.Principal) ([]domain.Transaction, error) {
	if officeID := scope.ListFilter(principal); officeID != "" {
		return s.Transactions.ListByOffice(ctx, officeID)
	}
	return s.Transactions.ListAll(ctx)
}

func (s *TransactionService) ListByClient(ctx context.Context, principal domain.Principal, clientID string) ([]domain.Transaction, error) {
	client, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Client not found")
		}
		return nil, err
	}
	if err := scope.CheckWithReason(principal, client.OfficeID,
		"You can only view transactions of your exchange office"); err != nil {
		return nil, err
	}
	return s.Transactions.ListByClient(ctx, clientID)
}

func (s *TransactionService) load(ctx context.Context, id string) (*domain.Transaction, error) {
	if id == "" {
		return nil, domain.Denial("Transaction ID is required")
	}
	tx, err := s.Transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Transaction not found")
		}
		return nil, err
	}
	return tx, nil
}
