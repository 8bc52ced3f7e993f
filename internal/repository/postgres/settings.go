package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.CompanySettings, error) {
	s := &domain.CompanySettings{}
	query := `SELECT company_name, COALESCE(logo_url, ''), COALESCE(address1, ''), COALESCE(address2, ''),
	          COALESCE(telephone, ''), COALESCE(toll_free, ''), COALESCE(site_url, ''), updated_on
	          FROM company_settings WHERE id = 1`
	var updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query).Scan(&s.CompanyName, &s.LogoURL, &s.Address1, &s.Address2,
		&s.Telephone, &s.TollFree, &s.SiteURL, &updatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	s.UpdatedOn = formatTime(updatedOn)
	return s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s *domain.CompanySettings) error {
	query := `INSERT INTO company_settings (id, company_name, logo_url, address1, address2, telephone, toll_free, site_url, updated_on)
	          VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE SET company_name=EXCLUDED.company_name, logo_url=EXCLUDED.logo_url,
	          address1=EXCLUDED.address1, address2=EXCLUDED.address2, telephone=EXCLUDED.telephone,
	          toll_free=EXCLUDED.toll_free, site_url=EXCLUDED.site_url, updated_on=EXCLUDED.updated_on`
	now := time.Now()
	s.UpdatedOn = formatTime(now)
	_, err := r.db.ExecContext(ctx, query, s.CompanyName, s.LogoURL, s.Address1, s.Address2, s.Telephone, s.TollFree, s.SiteURL, now)
	return err
}
