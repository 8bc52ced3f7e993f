package jobs

import (
	"context"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
)

// auditedStatuses are the orders whose money actually moved.
var auditedStatuses = []domain.OrderStatus{
	domain.OrderStatusPaid,
	domain.OrderStatusPartiallyRefunded,
	domain.OrderStatusRefunded,
}

// PricingDrift is one order whose stored total no longer matches a
// recomputation from its own snapshot.
type PricingDrift struct {
	OrderID    int32
	Stored     string
	Recomputed string
}

// AuditOrderPricing recomputes every charged order from its snapshot and
// reports any whose cents-rounded grand total differs from what was stored.
func (jr *JobRunner) AuditOrderPricing() {
	jr.runWithRecovery("AuditOrderPricing", func() {
		ctx := context.Background()
		drifts, err := jr.auditOrderPricing(ctx)
		if err != nil {
			logger.Error("Failed to audit order pricing", "error", err)
			return
		}
		if len(drifts) > 0 {
			jr.reportDrifts(ctx, drifts)
		}
	})
}

func (jr *JobRunner) auditOrderPricing(ctx context.Context) ([]PricingDrift, error) {
	orders, err := jr.orders.ListByStatus(ctx, auditedStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var drifts []PricingDrift
	for _, o := range orders {
		recomputed, err := jr.engine.Compute(pricing.FromSnapshot(o.Snapshot))
		if err != nil {
			logger.Warn("Order snapshot could not be priced", "order_id", o.ID, "error", err)
			continue
		}
		stored := pricing.Round(o.Pricing.GrandTotal)
		fresh := pricing.Round(recomputed.GrandTotal)
		if !stored.Equal(fresh) {
			logger.Warn("Order pricing drift",
				"order_id", o.ID,
				"stored", stored.StringFixed(2),
				"recomputed", fresh.StringFixed(2))
			drifts = append(drifts, PricingDrift{OrderID: o.ID, Stored: stored.StringFixed(2), Recomputed: fresh.StringFixed(2)})
		}
	}

	logger.Info("Audited order pricing", "checked", len(orders), "drifted", len(drifts))
	return drifts, nil
}

func (jr *JobRunner) reportDrifts(ctx context.Context, drifts []PricingDrift) {
	to := jr.config.Email.AdminEmail
	if to == "" || jr.email == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d order(s) no longer match a recomputation from their snapshot:\n\n", len(drifts))
	for _, d := range drifts {
		fmt.Fprintf(&b, "Order #%d: stored %s, recomputed %s\n", d.OrderID, d.Stored, d.Recomputed)
	}
	subject := fmt.Sprintf("Pricing audit: %d order(s) drifted", len(drifts))
	if err := jr.email.SendAdminNotification(ctx, to, subject, b.String()); err != nil {
		logger.Error("Failed to send pricing audit report", "error", err)
	}
}
