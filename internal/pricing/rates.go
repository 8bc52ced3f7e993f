package pricing

import "github.com/shopspring/decimal"

// Rates are the fixed fees and percentages the engine applies.
type Rates struct {
	LabourBase      decimal.Decimal // flat labour fee up to the threshold
	LabourThreshold decimal.Decimal // equipment total at which stepped labour starts
	LabourStep      decimal.Decimal // equipment amount covered by each extra labour step
	LabourStepFee   decimal.Decimal
	MountLabour     decimal.Decimal
	InsuranceRate   decimal.Decimal // fraction of equipment total
	ConsumablesRate decimal.Decimal // fraction of each non-excluded unit-day
	DeliveryPickup  decimal.Decimal
	AdminFeeRate    decimal.Decimal // fraction of equipment + labour + delivery
}

// DefaultRates returns the standard rate card.
func DefaultRates() Rates {
	return Rates{
		LabourBase:      decimal.NewFromInt(160),
		LabourThreshold: decimal.NewFromInt(2000),
		LabourStep:      decimal.NewFromInt(1000),
		LabourStepFee:   decimal.NewFromInt(80),
		MountLabour:     decimal.NewFromInt(160),
		InsuranceRate:   decimal.RequireFromString("0.05"),
		ConsumablesRate: decimal.RequireFromString("0.01"),
		DeliveryPickup:  decimal.NewFromInt(150),
		AdminFeeRate:    decimal.RequireFromString("0.03"),
	}
}

// LabourCharge is a step function of the equipment total: the base fee up to
// and including the threshold, then one step fee for every started step above it.
func (r Rates) LabourCharge(equipmentTotal decimal.Decimal) decimal.Decimal {
	if equipmentTotal.LessThanOrEqual(r.LabourThreshold) {
		return r.LabourBase
	}
	steps := equipmentTotal.Sub(r.LabourThreshold).Div(r.LabourStep).Floor().Add(decimal.NewFromInt(1))
	return r.LabourBase.Add(steps.Mul(r.LabourStepFee))
}

func (r Rates) valid() bool {
	for _, v := range []decimal.Decimal{
		r.LabourBase, r.LabourThreshold, r.LabourStepFee, r.MountLabour,
		r.InsuranceRate, r.ConsumablesRate, r.DeliveryPickup, r.AdminFeeRate,
	} {
		if v.IsNegative() {
			return false
		}
	}
	return r.LabourStep.IsPositive()
}
