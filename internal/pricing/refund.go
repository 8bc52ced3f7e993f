package pricing

import (
	"errors"
	"fmt"

	"rentaldesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRefundAmount  = errors.New("refund amount must be greater than zero")
	ErrRefundExceedsBalance = errors.New("refund amount exceeds refundable balance")
)

// RefundResult is the order state after a refund is applied.
type RefundResult struct {
	Refunded  decimal.Decimal    `json:"refunded"`
	Remaining decimal.Decimal    `json:"remaining"`
	Status    domain.OrderStatus `json:"status"`
}

// RefundableBalance is what is still refundable on a charged total, in cents.
func RefundableBalance(total, refunded decimal.Decimal) decimal.Decimal {
	remaining := Round(total).Sub(Round(refunded))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyRefund adds amount to the refunded sum. The amount is taken in cents
// and may not exceed the refundable balance.
func ApplyRefund(total, refunded, amount decimal.Decimal) (RefundResult, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return RefundResult{}, ErrInvalidRefundAmount
	}
	balance := RefundableBalance(total, refunded)
	if amount.GreaterThan(balance) {
		return RefundResult{}, fmt.Errorf("%w: requested %s, available %s",
			ErrRefundExceedsBalance, amount.StringFixed(2), balance.StringFixed(2))
	}

	res := RefundResult{
		Refunded:  Round(refunded).Add(amount),
		Remaining: balance.Sub(amount),
		Status:    domain.OrderStatusPartiallyRefunded,
	}
	if res.Remaining.IsZero() {
		res.Status = domain.OrderStatusRefunded
	}
	return res, nil
}
