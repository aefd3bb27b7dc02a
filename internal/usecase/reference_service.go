package usecase

import (
	"context"
	"errors"

	"exsys/internal/domain"
)

// ReferenceService serves read-only vocabulary: countries and the enum
// value lists the clients of the API render as dropdowns.
type ReferenceService struct {
	Countries CountryRepository
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return s.Countries.List(ctx)
}

func (s *ReferenceService) Country(ctx context.Context, code string) (*domain.Country, error) {
	if code == "" {
		return nil, domain.Denial("Country code is required")
	}
	country, err := s.Countries.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Denial("Country not found")
		}
		return nil, err
	}
	return country, nil
}

// Nationalities is derived from the country table rather than kept as
// a separate enum.
func (s *ReferenceService) Nationalities(ctx context.Context) ([]string, error) {
	countries, err := s.Countries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(countries))
	for _, country := range countries {
		out = append(out, country.Nationality)
	}
	return out, nil
}

// EnumCatalog is the full set of enumerated values the API exposes.
type EnumCatalog struct {
	Roles              []string `json:"roles"`
	Statuses           []string `json:"statuses"`
	Genders            []string `json:"genders"`
	Currencies         []string `json:"currencies"`
	ChannelTypes       []string `json:"channelTypes"`
	CampaignStatuses   []string `json:"campaignStatuses"`
	AcquisitionSources []string `json:"acquisitionSources"`
}

func (s *ReferenceService) Enums() EnumCatalog {
	return EnumCatalog{
		Roles:              domain.RoleValues(),
		Statuses:           domain.StatusValues(),
		Genders:            domain.GenderValues(),
		Currencies:         domain.CurrencyValues(),
		ChannelTypes:       domain.ChannelTypeValues(),
		CampaignStatuses:   domain.CampaignStatusValues(),
		AcquisitionSources: domain.AcquisitionSourceValues(),
	}
}
