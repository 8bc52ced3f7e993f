package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TaxConfig maps a tax label to its percentage rate (0-100). Every line is
// applied to the same subtotal.
type TaxConfig map[string]decimal.Decimal

// Labels returns the tax labels in a stable order.
func (t TaxConfig) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Tax presets offered by the form builder. Keys are the labels stored on the form.
var TaxPresets = map[string]TaxConfig{
	"none":    {"none": decimal.Zero},
	"GST 5%":  {"GST 5%": decimal.NewFromInt(5)},
	"GST 12%": {"GST 12%": decimal.NewFromInt(12)},
	"GST 18%": {"GST 18%": decimal.NewFromInt(18)},
	"VAT 20%": {"VAT 20%": decimal.NewFromInt(20)},
}

// EquipmentSelection is what the client picked on an order form.
type EquipmentSelection struct {
	Quantities       map[int32]int `json:"quantities"`
	MountingRequired bool          `json:"mounting_required"`
	OwnLaptop        *bool         `json:"own_laptop,omitempty"`
}

type TaxLine struct {
	Label   string          `json:"label"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// OrderPricing is the full cost breakdown of an order, kept at full precision.
type OrderPricing struct {
	RentalDays       int             `json:"rental_days"`
	IsPrepaid        bool            `json:"is_prepaid"`
	NoSelection      bool            `json:"no_selection"`
	EquipmentTotal   decimal.Decimal `json:"equipment_total"`
	LabourCharge     decimal.Decimal `json:"labour_charge"`
	MountLabour      decimal.Decimal `json:"mount_labour"`
	ExtraLabourTotal decimal.Decimal `json:"extra_labour_total"`
	CombinedLabour   decimal.Decimal `json:"combined_labour"`
	Insurance        decimal.Decimal `json:"insurance"`
	ConsumablesTotal decimal.Decimal `json:"consumables_total"`
	DeliveryPickup   decimal.Decimal `json:"delivery_pickup"`
	AdminFees        decimal.Decimal `json:"admin_fees"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxLines         []TaxLine       `json:"tax_lines"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// Tax returns the amount of the named tax line, or zero.
func (p OrderPricing) Tax(label string) decimal.Decimal {
	for _, line := range p.TaxLines {
		if line.Label == label {
			return line.Amount
		}
	}
	return decimal.Zero
}
