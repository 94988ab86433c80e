package billing

import "math"

// Line is a priced order line. Amounts are integer minor units.
type Line struct {
	UnitPriceMinor int64
	Quantity       int
}

// Totals is the computed money breakdown for an order.
type Totals struct {
	SubtotalMinor      int64
	TaxMinor           int64
	ServiceChargeMinor int64
	DiscountMinor      int64
	TotalMinor         int64
}

// NormalizeLine coerces malformed input into a billable line.
// Quantity below one defaults to one, negative prices clamp to zero.
func NormalizeLine(line Line) Line {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if line.UnitPriceMinor < 0 {
		line.UnitPriceMinor = 0
	}
	return line
}

// LineTotal computes the extended amount for a single line.
func LineTotal(line Line) int64 {
	line = NormalizeLine(line)
	return line.UnitPriceMinor * int64(line.Quantity)
}

// Compute derives order totals from lines, percentage rates and a flat
// discount. Rates are percentages (5 means 5%). Rounding happens only
// here to keep stored values integer-safe. The discount never drives
// the total negative.
func Compute(lines []Line, taxRate, serviceChargeRate float64, discountMinor int64) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += LineTotal(line)
	}

	tax := roundPercent(subtotal, taxRate)
	serviceCharge := roundPercent(subtotal, serviceChargeRate)

	gross := subtotal + tax + serviceCharge
	if discountMinor < 0 {
		discountMinor = 0
	}
	if discountMinor > gross {
		discountMinor = gross
	}

	return Totals{
		SubtotalMinor:      subtotal,
		TaxMinor:           tax,
		ServiceChargeMinor: serviceCharge,
		DiscountMinor:      discountMinor,
		TotalMinor:         gross - discountMinor,
	}
}

func roundPercent(amount int64, rate float64) int64 {
	if amount <= 0 || rate <= 0 {
		return 0
	}
	result := int64(math.Round(float64(amount) * rate / 100))
	if result < 0 {
		return 0
	}
	return result
}
