package usecase

import (
	"context"
	"time"

	"exsys/internal/domain"
	"exsys/internal/infra/db"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user domain.User) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, officeID string) ([]domain.User, error)
	CountByOffice(ctx context.Context, officeID string) (int64, error)
}

type OfficeRepository interface {
	Create(ctx context.Context, office domain.ExchangeOffice) error
	GetByID(ctx context.Context, id string) (*domain.ExchangeOffice, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, office domain.ExchangeOffice) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.ExchangeOffice, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter db.ClientFilter) ([]domain.Client, int64, error)
	FindByPassportInOffice(ctx context.Context, passport, officeID string) (*domain.Client, error)
	FindByNationalIDInOffice(ctx context.Context, nationalID, officeID string) (*domain.Client, error)
	CountInOffice(ctx context.Context, ids []string, officeID string) (int64, error)
	CountByOffice(ctx context.Context, officeID string) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx domain.Transaction) error
	Delete(ctx context.Context, id string) error
	ListByOffice(ctx context.Context, officeID string) ([]domain.Transaction, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.MarketingCampaign) error
	GetByID(ctx context.Context, id string) (*domain.MarketingCampaign, error)
	ListByOffice(ctx context.Context, officeID string) ([]domain.MarketingCampaign, error)
	UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error
	AddTargets(ctx context.Context, campaignID string, clientIDs []string) error
	RemoveTargets(ctx context.Context, campaignID string, clientIDs []string) error
}

type ActionRepository interface {
	Create(ctx context.Context, action domain.MarketingAction) error
	GetByID(ctx context.Context, id string) (*domain.MarketingAction, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.MarketingAction, error)
	MarkSent(ctx context.Context, id string, sentAt *time.Time) error
}

type QuickMessageRepository interface {
	Create(ctx context.Context, msg domain.QuickMessage) error
	GetByID(ctx context.Context, id string) (*domain.QuickMessage, error)
	ListByOffice(ctx context.Context, officeID string) ([]domain.QuickMessage, error)
	MarkSent(ctx context.Context, id string, sentAt *time.Time) error
}

type SegmentHistoryRepository interface {
	Append(ctx context.Context, entry domain.SegmentHistoryEntry) error
	ListByClient(ctx context.Context, clientID string) ([]domain.SegmentHistoryEntry, error)
}

type CountryRepository interface {
	List(ctx context.Context) ([]domain.Country, error)
	GetByCode(ctx context.Context, code string) (*domain.Country, error)
}
