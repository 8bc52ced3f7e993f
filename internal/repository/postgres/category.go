package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, include_mounting, include_accessories, created_on, updated_on`

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	c := &domain.Category{}
	var createdOn, updatedOn time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.IncludeMounting, &c.IncludeAccessories, &createdOn, &updatedOn); err != nil {
		return nil, err
	}
	c.CreatedOn = formatTime(createdOn)
	c.UpdatedOn = formatTime(updatedOn)
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name, include_mounting, include_accessories, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $4) RETURNING id`
	now := time.Now()
	c.CreatedOn = formatTime(now)
	c.UpdatedOn = c.CreatedOn
	return r.db.QueryRowContext(ctx, query, c.Name, c.IncludeMounting, c.IncludeAccessories, now).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE LOWER(name) = LOWER($1)`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name=$1, include_mounting=$2, include_accessories=$3, updated_on=$4 WHERE id=$5`
	now := time.Now()
	c.UpdatedOn = formatTime(now)
	return requireAffected(r.db.ExecContext(ctx, query, c.Name, c.IncludeMounting, c.IncludeAccessories, now, c.ID))
}

func (r *categoryRepository) Delete(ctx context.Context, id int32) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id))
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) CountProducts(ctx context.Context, id int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, id).Scan(&count)
	return count, err
}
