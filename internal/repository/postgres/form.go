package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"

	"github.com/lib/pq"
)

type formRepository struct {
	db *sql.DB
}

func NewFormRepository(db *sql.DB) repository.FormRepository {
	return &formRepository{db: db}
}

const formSelect = `SELECT id, COALESCE(owner_id, 0), title, contact_name, contact_email, contact_phone, company_name,
	COALESCE(company_logo_url, ''), event, product_ids, is_prepaid, tax, status, COALESCE(access_code_hash, ''),
	created_on, updated_on FROM order_forms`

func scanForm(row interface{ Scan(...any) error }) (*domain.OrderForm, error) {
	f := &domain.OrderForm{}
	var event, tax []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(&f.ID, &f.OwnerID, &f.Title, &f.ContactName, &f.ContactEmail, &f.ContactPhone, &f.CompanyName,
		&f.CompanyLogoURL, &event, pq.Array(&f.ProductIDs), &f.IsPrepaid, &tax, &f.Status, &f.AccessCodeHash,
		&createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if len(event) > 0 {
		if err := json.Unmarshal(event, &f.Event); err != nil {
			return nil, fmt.Errorf("decode event for form %d: %w", f.ID, err)
		}
	}
	// Older rows stored the tax as a JSON-encoded string.
	if f.Tax, err = pricing.ParseTaxConfig(tax); err != nil {
		return nil, fmt.Errorf("decode tax for form %d: %w", f.ID, err)
	}
	f.CreatedOn = formatTime(createdOn)
	f.UpdatedOn = formatTime(updatedOn)
	return f, nil
}

// finishDate is stored separately so ended forms can be found with an index.
func finishDate(f *domain.OrderForm) interface{} {
	d := f.Event.Window.FinishDate
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return nil
	}
	return d
}

func encodeForm(f *domain.OrderForm) (event, tax []byte, err error) {
	if event, err = json.Marshal(f.Event); err != nil {
		return nil, nil, err
	}
	if f.Tax == nil {
		f.Tax = domain.TaxConfig{}
	}
	if tax, err = json.Marshal(f.Tax); err != nil {
		return nil, nil, err
	}
	return event, tax, nil
}

func nullableID(id int32) interface{} {
	if id == 0 {
		return nil
	}
	return id
}

func (r *formRepository) Create(ctx context.Context, f *domain.OrderForm) error {
	event, tax, err := encodeForm(f)
	if err != nil {
		return err
	}
	query := `INSERT INTO order_forms (owner_id, title, contact_name, contact_email, contact_phone, company_name, company_logo_url,
	          event, finish_date, product_ids, is_prepaid, tax, status, access_code_hash, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15) RETURNING id`
	now := time.Now()
	f.CreatedOn = formatTime(now)
	f.UpdatedOn = f.CreatedOn
	return r.db.QueryRowContext(ctx, query, nullableID(f.OwnerID), f.Title, f.ContactName, f.ContactEmail, f.ContactPhone,
		f.CompanyName, f.CompanyLogoURL, event, finishDate(f), pq.Array(f.ProductIDs), f.IsPrepaid, tax, f.Status,
		f.AccessCodeHash, now).Scan(&f.ID)
}

func (r *formRepository) GetByID(ctx context.Context, id int32) (*domain.OrderForm, error) {
	f, err := scanForm(r.db.QueryRowContext(ctx, formSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func (r *formRepository) Update(ctx context.Context, f *domain.OrderForm) error {
	event, tax, err := encodeForm(f)
	if err != nil {
		return err
	}
	query := `UPDATE order_forms SET title=$1, contact_name=$2, contact_email=$3, contact_phone=$4, company_name=$5,
	          company_logo_url=$6, event=$7, finish_date=$8, product_ids=$9, is_prepaid=$10, tax=$11, status=$12, updated_on=$13
	          WHERE id=$14`
	now := time.Now()
	f.UpdatedOn = formatTime(now)
	return requireAffected(r.db.ExecContext(ctx, query, f.Title, f.ContactName, f.ContactEmail, f.ContactPhone,
		f.CompanyName, f.CompanyLogoURL, event, finishDate(f), pq.Array(f.ProductIDs), f.IsPrepaid, tax, f.Status, now, f.ID))
}

func (r *formRepository) Delete(ctx context.Context, id int32) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM order_forms WHERE id = $1`, id))
}

func (r *formRepository) List(ctx context.Context, filter domain.FormFilter) ([]domain.OrderForm, int32, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR company_name ILIKE $%d OR event->>'show_name' ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM order_forms`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := pageArgs(filter.Page, filter.PageSize)
	query := formSelect + where + fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	forms, err := scanForms(rows)
	if err != nil {
		return nil, 0, err
	}
	return forms, count, nil
}

func scanForms(rows *sql.Rows) ([]domain.OrderForm, error) {
	defer rows.Close()
	var forms []domain.OrderForm
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *f)
	}
	return forms, rows.Err()
}

func (r *formRepository) SetAccessCodeHash(ctx context.Context, id int32, hash string) error {
	query := `UPDATE order_forms SET access_code_hash=$1, updated_on=$2 WHERE id=$3`
	return requireAffected(r.db.ExecContext(ctx, query, hash, time.Now(), id))
}

func (r *formRepository) ListPublishedEndedBefore(ctx context.Context, date string) ([]domain.OrderForm, error) {
	query := formSelect + ` WHERE status = $1 AND finish_date IS NOT NULL AND finish_date < $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.FormStatusPublished, date)
	if err != nil {
		return nil, err
	}
	return scanForms(rows)
}

func (r *formRepository) UpdateStatus(ctx context.Context, id int32, status domain.FormStatus) error {
	query := `UPDATE order_forms SET status=$1, updated_on=$2 WHERE id=$3`
	return requireAffected(r.db.ExecContext(ctx, query, status, time.Now(), id))
}
