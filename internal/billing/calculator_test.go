package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{UnitPriceMinor: 10000, Quantity: 2},
		{UnitPriceMinor: 5000, Quantity: 1},
	}

	totals := Compute(lines, 5, 0, 0)

	assert.Equal(t, int64(25000), totals.SubtotalMinor)
	assert.Equal(t, int64(1250), totals.TaxMinor)
	assert.Equal(t, int64(0), totals.ServiceChargeMinor)
	assert.Equal(t, int64(26250), totals.TotalMinor)
}

func TestComputeWithServiceCharge(t *testing.T) {
	lines := []Line{{UnitPriceMinor: 20000, Quantity: 1}}

	totals := Compute(lines, 5, 10, 0)

	assert.Equal(t, int64(20000), totals.SubtotalMinor)
	assert.Equal(t, int64(1000), totals.TaxMinor)
	assert.Equal(t, int64(2000), totals.ServiceChargeMinor)
	assert.Equal(t, int64(23000), totals.TotalMinor)
}

func TestComputeWithDiscount(t *testing.T) {
	lines := []Line{{UnitPriceMinor: 10000, Quantity: 2}}

	totals := Compute(lines, 5, 0, 1000)

	assert.Equal(t, int64(20000), totals.SubtotalMinor)
	assert.Equal(t, int64(1000), totals.TaxMinor)
	assert.Equal(t, int64(1000), totals.DiscountMinor)
	assert.Equal(t, int64(20000), totals.TotalMinor)
}

func TestComputeDiscountClamped(t *testing.T) {
	lines := []Line{{UnitPriceMinor: 1000, Quantity: 1}}

	// Negative discounts coerce to zero.
	totals := Compute(lines, 0, 0, -500)
	assert.Equal(t, int64(0), totals.DiscountMinor)
	assert.Equal(t, int64(1000), totals.TotalMinor)

	// A discount above the gross caps at the gross, never a negative total.
	totals = Compute(lines, 0, 0, 5000)
	assert.Equal(t, int64(1000), totals.DiscountMinor)
	assert.Equal(t, int64(0), totals.TotalMinor)
}

func TestComputeOrderIndependent(t *testing.T) {
	a := []Line{
		{UnitPriceMinor: 12345, Quantity: 3},
		{UnitPriceMinor: 999, Quantity: 1},
		{UnitPriceMinor: 45000, Quantity: 2},
	}
	b := []Line{a[2], a[0], a[1]}

	assert.Equal(t, Compute(a, 12.5, 5, 700), Compute(b, 12.5, 5, 700))
}

func TestNormalizeLine(t *testing.T) {
	t.Run("zero quantity defaults to one", func(t *testing.T) {
		line := NormalizeLine(Line{UnitPriceMinor: 5000, Quantity: 0})
		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, int64(5000), LineTotal(line))
	})

	t.Run("negative quantity defaults to one", func(t *testing.T) {
		line := NormalizeLine(Line{UnitPriceMinor: 5000, Quantity: -3})
		assert.Equal(t, 1, line.Quantity)
	})

	t.Run("negative price clamps to zero", func(t *testing.T) {
		line := NormalizeLine(Line{UnitPriceMinor: -100, Quantity: 2})
		assert.Equal(t, int64(0), line.UnitPriceMinor)
		assert.Equal(t, int64(0), LineTotal(line))
	})
}

func TestComputeZeroRates(t *testing.T) {
	totals := Compute([]Line{{UnitPriceMinor: 9999, Quantity: 1}}, 0, 0, 0)

	assert.Equal(t, int64(9999), totals.SubtotalMinor)
	assert.Equal(t, int64(0), totals.TaxMinor)
	assert.Equal(t, totals.SubtotalMinor, totals.TotalMinor)
}

func TestComputeNegativeRateIgnored(t *testing.T) {
	totals := Compute([]Line{{UnitPriceMinor: 10000, Quantity: 1}}, -5, -2, 0)

	assert.Equal(t, int64(10000), totals.TotalMinor)
}

func TestComputeEmptyLines(t *testing.T) {
	totals := Compute(nil, 5, 10, 0)

	assert.Equal(t, Totals{}, totals)
}

func TestComputeRounding(t *testing.T) {
	// 3333 * 5% = 166.65, rounds to 167.
	totals := Compute([]Line{{UnitPriceMinor: 3333, Quantity: 1}}, 5, 0, 0)
	assert.Equal(t, int64(167), totals.TaxMinor)

	// 1010 * 2.5% = 25.25, rounds to 25.
	totals = Compute([]Line{{UnitPriceMinor: 1010, Quantity: 1}}, 2.5, 0, 0)
	assert.Equal(t, int64(25), totals.TaxMinor)
}
