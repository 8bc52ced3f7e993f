package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const timestampLayout = time.RFC3339

type Store struct {
	db *sql.DB
	repository.CategoryRepository
	repository.ProductRepository
	repository.FormRepository
	repository.OrderRepository
	repository.SettingsRepository
	repository.UserRepository
	repository.StatsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		CategoryRepository: NewCategoryRepository(db),
		ProductRepository:  NewProductRepository(db),
		FormRepository:     NewFormRepository(db),
		OrderRepository:    NewOrderRepository(db),
		SettingsRepository: NewSettingsRepository(db),
		UserRepository:     NewUserRepository(db),
		StatsRepository:    NewStatsRepository(db),
	}
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall(ctx, "migrate")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult(ctx, "migrate", err)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows to repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// requireAffected turns an update or delete that touched nothing into ErrNotFound.
func requireAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// pageArgs turns a 1-based page into LIMIT/OFFSET values.
func pageArgs(page, pageSize int32) (limit, offset int32) {
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
