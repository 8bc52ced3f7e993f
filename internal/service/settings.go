package service

import (
	"context"
	"errors"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// GetSettings returns empty settings until they are saved for the first time.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.CompanySettings{}, nil
	}
	return settings, err
}

func (s *settingsService) SaveSettings(ctx context.Context, settings *domain.CompanySettings) error {
	settings.CompanyName = strings.TrimSpace(settings.CompanyName)
	if settings.CompanyName == "" {
		return invalidInput("company name is required")
	}
	settings.SiteURL = strings.TrimRight(strings.TrimSpace(settings.SiteURL), "/")
	return s.settingsRepo.Save(ctx, settings)
}
