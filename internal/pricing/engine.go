// Package pricing computes the cost breakdown of an equipment rental order.
//
// Every surface that shows money for an order (quote, order detail, invoice,
// refund, audit) goes through Compute so the numbers can never disagree.
// Amounts are kept at full precision; rounding to cents happens only in
// Summarize.
package pricing

import (
	"errors"
	"fmt"
	"sort"

	"rentaldesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRentalDays  = errors.New("rental days must be a positive number")
	ErrMalformedTaxConfig = errors.New("malformed tax configuration")
	ErrInvalidRates       = errors.New("invalid pricing rates")
)

// Input is the order snapshot the engine prices.
type Input struct {
	// RentalDays wins over Window when set. Zero means unspecified; an
	// unreadable or out of order Window is then a *ValidationError.
	RentalDays int                       `json:"rental_days"`
	Window     *domain.RentalWindow      `json:"window,omitempty"`
	Selection  domain.EquipmentSelection `json:"selection"`
	Catalog    domain.Catalog            `json:"catalog"`
	IsPrepaid  bool                      `json:"is_prepaid"`
	Tax        domain.TaxConfig          `json:"tax"`
}

// Engine prices orders against a rate card. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) (*Engine, error) {
	if !rates.valid() {
		return nil, ErrInvalidRates
	}
	return &Engine{rates: rates}, nil
}

var defaultEngine = &Engine{rates: DefaultRates()}

// Compute prices the input with the default rate card.
func Compute(in Input) (domain.OrderPricing, error) {
	return defaultEngine.Compute(in)
}

func (e *Engine) Rates() Rates {
	return e.rates
}

type line struct {
	product domain.Product
	qty     decimal.Decimal
}

func (e *Engine) Compute(in Input) (domain.OrderPricing, error) {
	days, err := resolveRentalDays(in)
	if err != nil {
		return domain.OrderPricing{}, err
	}
	if err := ValidateTaxConfig(in.Tax); err != nil {
		return domain.OrderPricing{}, err
	}

	out := domain.OrderPricing{RentalDays: days, IsPrepaid: in.IsPrepaid}
	lines := selectedLines(in)
	if len(lines) == 0 {
		return zeroPricing(out, in.Tax), nil
	}

	r := e.rates
	nDays := decimal.NewFromInt(int64(days))

	equipment := decimal.Zero
	consumableBase := decimal.Zero
	extraLabour := decimal.Zero
	for _, l := range lines {
		cost := l.qty.Mul(l.product.DayRate(in.IsPrepaid)).Mul(nDays)
		equipment = equipment.Add(cost)
		if !l.product.ExcludeConsumables {
			consumableBase = consumableBase.Add(cost)
		}
		if l.product.HasLabourPrice {
			extraLabour = extraLabour.Add(l.qty.Mul(l.product.LabourPrice))
		}
	}

	out.EquipmentTotal = equipment
	out.LabourCharge = r.LabourCharge(equipment)
	out.MountLabour = decimal.Zero
	if in.Selection.MountingRequired {
		out.MountLabour = r.MountLabour
	}
	out.ExtraLabourTotal = extraLabour
	out.CombinedLabour = out.MountLabour.Add(extraLabour)
	out.Insurance = equipment.Mul(r.InsuranceRate)
	out.ConsumablesTotal = consumableBase.Mul(r.ConsumablesRate)
	out.DeliveryPickup = r.DeliveryPickup
	out.AdminFees = equipment.Add(out.LabourCharge).Add(out.DeliveryPickup).Mul(r.AdminFeeRate)

	out.Subtotal = equipment.
		Add(out.LabourCharge).
		Add(out.CombinedLabour).
		Add(out.Insurance).
		Add(out.ConsumablesTotal).
		Add(out.AdminFees).
		Add(out.DeliveryPickup)

	out.TaxLines = taxLines(out.Subtotal, in.Tax)
	out.TaxTotal = decimal.Zero
	for _, t := range out.TaxLines {
		out.TaxTotal = out.TaxTotal.Add(t.Amount)
	}
	out.GrandTotal = out.Subtotal.Add(out.TaxTotal)
	return out, nil
}

func resolveRentalDays(in Input) (int, error) {
	days := in.RentalDays
	if days == 0 && in.Window != nil {
		if _, err := ValidateWindow(*in.Window); err != nil {
			return 0, err
		}
		days = RentalDays(*in.Window)
	}
	if days == 0 {
		days = 1
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRentalDays, days)
	}
	return days, nil
}

// selectedLines returns the lines that count toward the order. Non-positive
// quantities, products missing from the catalog or without a category, and
// products with negative prices contribute nothing. Mounting-category
// products only count when mounting is required.
func selectedLines(in Input) []line {
	index := in.Catalog.Index()

	ids := make([]int32, 0, len(in.Selection.Quantities))
	for id := range in.Selection.Quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []line
	for _, id := range ids {
		qty := in.Selection.Quantities[id]
		if qty <= 0 {
			continue
		}
		p, ok := index[id]
		if !ok || p.Category == nil {
			continue
		}
		if p.PrepaidPrice.IsNegative() || p.StandardPrice.IsNegative() || p.LabourPrice.IsNegative() {
			continue
		}
		if p.Category.IncludeMounting && !in.Selection.MountingRequired {
			continue
		}
		lines = append(lines, line{product: p, qty: decimal.NewFromInt(int64(qty))})
	}
	return lines
}

func taxLines(subtotal decimal.Decimal, tax domain.TaxConfig) []domain.TaxLine {
	out := make([]domain.TaxLine, 0, len(tax))
	for _, label := range tax.Labels() {
		pct := tax[label]
		out = append(out, domain.TaxLine{
			Label:   label,
			Percent: pct,
			Amount:  subtotal.Mul(pct.Shift(-2)),
		})
	}
	return out
}

func zeroPricing(out domain.OrderPricing, tax domain.TaxConfig) domain.OrderPricing {
	out.NoSelection = true
	out.EquipmentTotal = decimal.Zero
	out.LabourCharge = decimal.Zero
	out.MountLabour = decimal.Zero
	out.ExtraLabourTotal = decimal.Zero
	out.CombinedLabour = decimal.Zero
	out.Insurance = decimal.Zero
	out.ConsumablesTotal = decimal.Zero
	out.DeliveryPickup = decimal.Zero
	out.AdminFees = decimal.Zero
	out.Subtotal = decimal.Zero
	out.TaxLines = taxLines(decimal.Zero, tax)
	out.TaxTotal = decimal.Zero
	out.GrandTotal = decimal.Zero
	return out
}

// FromSnapshot rebuilds the engine input frozen on an order.
func FromSnapshot(s domain.OrderSnapshot) Input {
	window := s.Form.Event.Window
	return Input{
		RentalDays: s.RentalDays,
		Window:     &window,
		Selection:  s.Selection,
		Catalog:    s.Catalog,
		IsPrepaid:  s.Form.IsPrepaid,
		Tax:        s.Form.Tax,
	}
}
