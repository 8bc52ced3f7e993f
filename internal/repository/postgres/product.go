package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"

	"github.com/lib/pq"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `SELECT p.id, p.title, COALESCE(p.description, ''), COALESCE(p.image_url, ''), p.category_id,
	p.prepaid_price, p.standard_price, p.has_labour_price, p.labour_price, p.exclude_consumables,
	p.created_on, p.updated_on, c.id, c.name, c.include_mounting, c.include_accessories
	FROM products p JOIN categories c ON c.id = p.category_id`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{Category: &domain.Category{}}
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CategoryID,
		&p.PrepaidPrice, &p.StandardPrice, &p.HasLabourPrice, &p.LabourPrice, &p.ExcludeConsumables,
		&createdOn, &updatedOn,
		&p.Category.ID, &p.Category.Name, &p.Category.IncludeMounting, &p.Category.IncludeAccessories)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = formatTime(createdOn)
	p.UpdatedOn = formatTime(updatedOn)
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	defer rows.Close()
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (title, description, image_url, category_id, prepaid_price, standard_price, has_labour_price, labour_price, exclude_consumables, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) RETURNING id`
	now := time.Now()
	p.CreatedOn = formatTime(now)
	p.UpdatedOn = p.CreatedOn
	return r.db.QueryRowContext(ctx, query, p.Title, p.Description, p.ImageURL, p.CategoryID,
		p.PrepaidPrice, p.StandardPrice, p.HasLabourPrice, p.LabourPrice, p.ExcludeConsumables, now).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET title=$1, description=$2, image_url=$3, category_id=$4, prepaid_price=$5, standard_price=$6,
	          has_labour_price=$7, labour_price=$8, exclude_consumables=$9, updated_on=$10 WHERE id=$11`
	now := time.Now()
	p.UpdatedOn = formatTime(now)
	return requireAffected(r.db.ExecContext(ctx, query, p.Title, p.Description, p.ImageURL, p.CategoryID,
		p.PrepaidPrice, p.StandardPrice, p.HasLabourPrice, p.LabourPrice, p.ExcludeConsumables, now, p.ID))
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id))
}

func (r *productRepository) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int32, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if f.Search != "" {
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.CategoryID != 0 {
		where += fmt.Sprintf(" AND p.category_id = $%d", argIdx)
		args = append(args, f.CategoryID)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM products p` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := productSelect + where + ` ORDER BY p.id DESC`
	if f.PageSize > 0 {
		limit, offset := pageArgs(f.Page, f.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []int32) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, productSelect+` WHERE p.id = ANY($1) ORDER BY p.id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}
