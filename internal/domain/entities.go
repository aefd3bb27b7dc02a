package domain

import "time"

type ExchangeOffice struct {
	ID        string
	Name      string
	Address   string
	City      string
	Phone     string
	Email     string
	Status    Status
	CreatedAt time.Time
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Status       Status
	OfficeID     string
	OfficeName   string
	CreatedAt    time.Time
}

func (u User) Principal() Principal {
	return Principal{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
		OfficeID:   u.OfficeID,
		OfficeName: u.OfficeName,
		CreatedAt:  u.CreatedAt,
	}
}

type Client struct {
	ID                string
	FirstName         string
	LastName          string
	BirthDate         *time.Time
	Email             string
	Phone             string
	WhatsApp          string
	NationalID        string
	Passport          string
	CountryCode       string
	Residence         string
	Gender            Gender
	AcquisitionSource AcquisitionSource
	Status            Status
	CurrentSegment    string
	OfficeID          string
	CreatedAt         time.Time
}

type SegmentHistoryEntry struct {
	ID        string
	ClientID  string
	Segment   string
	CreatedAt time.Time
}

type Transaction struct {
	ID              string
	Amount          float64
	SourceCurrency  Currency
	TargetCurrency  Currency
	ExchangeRate    float64
	TransactionDate time.Time
	ClientID        string
	OfficeID        string
}

type MarketingCampaign struct {
	ID            string
	Title         string
	Description   string
	Status        CampaignStatus
	StartDate     time.Time
	EndDate       time.Time
	OfficeID      string
	CreatedByID   string
	TargetClients []string
	CreatedAt     time.Time
}

type MarketingAction struct {
	ID          string
	Title       string
	ChannelType ChannelType
	Content     string
	SentAt      *time.Time
	CampaignID  string
	OfficeID    string
	CreatedByID string
	CreatedAt   time.Time
}

type QuickMessage struct {
	ID            string
	Title         string
	ChannelType   ChannelType
	Content       string
	SentAt        *time.Time
	OfficeID      string
	CreatedByID   string
	TargetClients []string
	CreatedAt     time.Time
}

type Country struct {
	Code        string
	Name        string
	Nationality string
}
