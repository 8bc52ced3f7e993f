package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusPartiallyRefunded OrderStatus = "partially_refunded"
	OrderStatusRefunded          OrderStatus = "refunded"
	OrderStatusFailed            OrderStatus = "failed"
)

// Refundable reports whether money can still be returned on an order in this status.
func (s OrderStatus) Refundable() bool {
	return s == OrderStatusPaid || s == OrderStatusPartiallyRefunded
}

type ClientInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	BoothNumber string `json:"booth_number"`
	Notes       string `json:"notes"`
}

// OrderSnapshot is everything pricing needs, frozen when the order is placed.
// Invoices and audits recompute from it and never from the live catalog.
type OrderSnapshot struct {
	Form       OrderForm          `json:"form"`
	Catalog    Catalog            `json:"catalog"`
	Selection  EquipmentSelection `json:"selection"`
	Client     ClientInfo         `json:"client"`
	RentalDays int                `json:"rental_days"`
}

type Order struct {
	ID            int32           `json:"id"`
	FormID        int32           `json:"form_id"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	RefundReason  string          `json:"refund_reason"`
	RefundedOn    *string         `json:"refunded_on,omitempty"`
	Snapshot      OrderSnapshot   `json:"snapshot"`
	Pricing       OrderPricing    `json:"pricing"`
	CreatedOn     string          `json:"created_on"`
	UpdatedOn     string          `json:"updated_on"`
}

type OrderFilter struct {
	Status   OrderStatus
	FormID   int32
	Page     int32
	PageSize int32
}
