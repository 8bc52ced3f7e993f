package postgres

import (
	"context"
	"database/sql"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts(ctx context.Context) (*domain.DashboardCounts, error) {
	c := &domain.DashboardCounts{}
	query := `SELECT
	          (SELECT count(*) FROM order_forms),
	          (SELECT count(*) FROM products),
	          (SELECT count(*) FROM categories),
	          (SELECT count(*) FROM orders),
	          (SELECT count(*) FROM users)`
	err := r.db.QueryRowContext(ctx, query).Scan(&c.Forms, &c.Products, &c.Categories, &c.Orders, &c.Users)
	if err != nil {
		return nil, err
	}
	return c, nil
}
