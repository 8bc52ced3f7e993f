package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderSelect = `SELECT id, form_id, status, payment_method, transaction_id, total_amount, refund_amount,
	refund_reason, refunded_on, snapshot, pricing, created_on, updated_on FROM orders`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	o := &domain.Order{}
	var snapshot, pricing []byte
	var refundedOn sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&o.ID, &o.FormID, &o.Status, &o.PaymentMethod, &o.TransactionID, &o.TotalAmount, &o.RefundAmount,
		&o.RefundReason, &refundedOn, &snapshot, &pricing, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &o.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot for order %d: %w", o.ID, err)
	}
	if err := json.Unmarshal(pricing, &o.Pricing); err != nil {
		return nil, fmt.Errorf("decode pricing for order %d: %w", o.ID, err)
	}
	if refundedOn.Valid {
		s := formatTime(refundedOn.Time)
		o.RefundedOn = &s
	}
	o.CreatedOn = formatTime(createdOn)
	o.UpdatedOn = formatTime(updatedOn)
	return o, nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	snapshot, err := json.Marshal(o.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	pricing, err := json.Marshal(o.Pricing)
	if err != nil {
		return fmt.Errorf("encode pricing: %w", err)
	}

	query := `INSERT INTO orders (form_id, status, payment_method, transaction_id, total_amount, refund_amount, snapshot, pricing, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`
	now := time.Now()
	o.CreatedOn = formatTime(now)
	o.UpdatedOn = o.CreatedOn
	return r.db.QueryRowContext(ctx, query, o.FormID, o.Status, o.PaymentMethod, o.TransactionID,
		o.TotalAmount, o.RefundAmount, snapshot, pricing, now).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// UpdateRefund locks the order row, lets apply change its refund bookkeeping
// and writes it back in the same transaction. Concurrent refunds of one order
// run one after the other. The snapshot and pricing are immutable once written.
func (r *orderRepository) UpdateRefund(ctx context.Context, id int32, apply func(o *domain.Order) error) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := scanOrder(tx.QueryRowContext(ctx, orderSelect+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	if err := apply(o); err != nil {
		return nil, err
	}

	query := `UPDATE orders SET status=$1, refund_amount=$2, refund_reason=$3, refunded_on=$4, updated_on=$4 WHERE id=$5`
	now := time.Now()
	if err := requireAffected(tx.ExecContext(ctx, query, o.Status, o.RefundAmount, o.RefundReason, now, o.ID)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ts := formatTime(now)
	o.RefundedOn = &ts
	o.UpdatedOn = ts
	return o, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int32) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id))
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int32, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.FormID != 0 {
		where += fmt.Sprintf(" AND form_id = $%d", argIdx)
		args = append(args, filter.FormID)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM orders`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limit, offset := pageArgs(filter.Page, filter.PageSize)
	query := orderSelect + where + fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	rows, err := r.db.QueryContext(ctx, orderSelect+` WHERE status = ANY($1) ORDER BY id`, pq.Array(values))
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}
