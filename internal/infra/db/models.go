package db

import "time"

type ExchangeOfficeModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Address   string
	City      string
	Phone     string
	Email     string    `gorm:"uniqueIndex;not null"`
	Status    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ExchangeOfficeModel) TableName() string { return "exchange_offices" }

type UserModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	Phone        string
	Role         string    `gorm:"not null"`
	Status       string    `gorm:"not null"`
	OfficeID     *string   `gorm:"type:uuid;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type ClientModel struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	FirstName         string    `gorm:"not null"`
	LastName          string    `gorm:"not null"`
	BirthDate         *time.Time
	Email             string
	Phone             string
	WhatsApp          string
	NationalID        string `gorm:"index"`
	Passport          string `gorm:"index"`
	CountryCode       string
	Residence         string
	Gender            string
	AcquisitionSource string
	Status            string    `gorm:"not null"`
	CurrentSegment    string
	OfficeID          string    `gorm:"type:uuid;index;not null"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (ClientModel) TableName() string { return "clients" }

type SegmentHistoryModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ClientID  string    `gorm:"type:uuid;index;not null"`
	Segment   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SegmentHistoryModel) TableName() string { return "client_segment_history" }

type TransactionModel struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	Amount          float64   `gorm:"not null"`
	SourceCurrency  string    `gorm:"not null"`
	TargetCurrency  string    `gorm:"not null"`
	ExchangeRate    float64   `gorm:"not null"`
	TransactionDate time.Time `gorm:"not null"`
	ClientID        string    `gorm:"type:uuid;index;not null"`
	OfficeID        string    `gorm:"type:uuid;index;not null"`
}

func (TransactionModel) TableName() string { return "transactions" }

type MarketingCampaignModel struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string    `gorm:"not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	OfficeID    string    `gorm:"type:uuid;index;not null"`
	CreatedByID string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (MarketingCampaignModel) TableName() string { return "marketing_campaigns" }

type CampaignTargetModel struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	CampaignID string    `gorm:"type:uuid;index;not null"`
	ClientID   string    `gorm:"type:uuid;index;not null"`
	AddedAt    time.Time `gorm:"not null"`
}

func (CampaignTargetModel) TableName() string { return "marketing_campaign_targets" }

type MarketingActionModel struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	ChannelType string    `gorm:"not null"`
	Content     string    `gorm:"not null"`
	SentAt      *time.Time
	CampaignID  string    `gorm:"type:uuid;index;not null"`
	OfficeID    string    `gorm:"type:uuid;index;not null"`
	CreatedByID string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (MarketingActionModel) TableName() string { return "marketing_actions" }

type QuickMessageModel struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	ChannelType string    `gorm:"not null"`
	Content     string    `gorm:"not null"`
	SentAt      *time.Time
	OfficeID    string    `gorm:"type:uuid;index;not null"`
	CreatedByID string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (QuickMessageModel) TableName() string { return "quick_messages" }

type QuickMessageTargetModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	QuickMessageID string    `gorm:"type:uuid;index;not null"`
	ClientID       string    `gorm:"type:uuid;index;not null"`
	AddedAt        time.Time `gorm:"not null"`
}

func (QuickMessageTargetModel) TableName() string { return "quick_message_targets" }

type CountryModel struct {
	Code        string `gorm:"primaryKey;size:2"`
	Name        string `gorm:"not null"`
	Nationality string `gorm:"not null"`
}

func (CountryModel) TableName() string { return "countries" }
