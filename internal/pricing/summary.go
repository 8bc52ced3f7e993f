package pricing

import (
	"math"

	"rentaldesk-backend/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "CAD"

// Line labels shared by every surface that renders an order total.
const (
	LabelEquipment   = "Equipment Rentals"
	LabelLabour      = "Labour"
	LabelExtraLabour = "Additional Mount/Labour"
	LabelInsurance   = "Insurance"
	LabelConsumables = "Consumables"
	LabelAdminFees   = "Admin Fees"
	LabelDelivery    = "Delivery / Pickup"
	LabelSubtotal    = "Subtotal"
)

type SummaryLine struct {
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

// Summary is the presentation form of an OrderPricing: cents-rounded,
// labelled and currency formatted.
type Summary struct {
	Currency string        `json:"currency"`
	Lines    []SummaryLine `json:"lines"`
	Subtotal SummaryLine   `json:"subtotal"`
	Taxes    []SummaryLine `json:"taxes"`
	Total    SummaryLine   `json:"total"`
}

var printer = message.NewPrinter(language.English)

// maxGroupable is the largest whole amount that fits an int64 for grouping.
var maxGroupable = decimal.NewFromInt(math.MaxInt64)

// Round rounds an amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount as dollars and cents with thousands separators.
func FormatMoney(d decimal.Decimal) string {
	r := Round(d)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	fixed := r.StringFixed(2)
	cents := fixed[len(fixed)-3:]
	whole := r.Truncate(0)
	if whole.GreaterThan(maxGroupable) {
		return sign + "$" + fixed
	}
	return sign + "$" + printer.Sprintf("%d", whole.IntPart()) + cents
}

func summaryLine(label string, amount decimal.Decimal) SummaryLine {
	return SummaryLine{Label: label, Amount: Round(amount), Display: FormatMoney(amount)}
}

// Summarize builds the line items shown on the order summary, the order view
// and the invoice. The extra labour line only appears when it is non-zero and
// zero-rate tax lines are omitted.
func Summarize(p domain.OrderPricing, currency string) Summary {
	if currency == "" {
		currency = DefaultCurrency
	}
	s := Summary{Currency: currency}

	s.Lines = append(s.Lines,
		summaryLine(LabelEquipment, p.EquipmentTotal),
		summaryLine(LabelLabour, p.LabourCharge),
	)
	if p.CombinedLabour.IsPositive() {
		s.Lines = append(s.Lines, summaryLine(LabelExtraLabour, p.CombinedLabour))
	}
	s.Lines = append(s.Lines,
		summaryLine(LabelInsurance, p.Insurance),
		summaryLine(LabelConsumables, p.ConsumablesTotal),
		summaryLine(LabelAdminFees, p.AdminFees),
		summaryLine(LabelDelivery, p.DeliveryPickup),
	)

	s.Subtotal = summaryLine(LabelSubtotal, p.Subtotal)
	for _, t := range p.TaxLines {
		if t.Percent.IsZero() {
			continue
		}
		s.Taxes = append(s.Taxes, summaryLine(t.Label, t.Amount))
	}
	s.Total = summaryLine("Total ("+currency+")", p.GrandTotal)
	return s
}
