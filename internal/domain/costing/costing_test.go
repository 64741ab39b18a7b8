// internal/domain/costing/costing_test.go
package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestLineCost(t *testing.T) {
	// Flour bought per kg at 18.50, recipe uses grams: 500 g = 0.5 kg -> 9.25
	line := IngredientLine{
		Quantity:           dec(500),
		Unit:               measure.UnitGram,
		CostPerPurchase:    dec(18.50),
		PurchaseUnit:       measure.UnitKilogram,
		QtyPerPurchaseUnit: dec(1),
	}
	cost, err := LineCost(line)
	require.NoError(t, err)
	assert.True(t, dec(9.25).Equal(cost), "got %s", cost)
}

func TestLineCostPackSize(t *testing.T) {
	// Eggs: a box of 30 pieces costs 60, recipe uses 6 pieces -> 12
	line := IngredientLine{
		Quantity:           dec(6),
		Unit:               measure.UnitPiece,
		CostPerPurchase:    dec(60),
		PurchaseUnit:       measure.UnitPiece,
		QtyPerPurchaseUnit: dec(30),
	}
	cost, err := LineCost(line)
	require.NoError(t, err)
	assert.True(t, dec(12).Equal(cost), "got %s", cost)
}

func TestLineCostClampsZeroPackSize(t *testing.T) {
	line := IngredientLine{
		Quantity:           dec(2),
		Unit:               measure.UnitKilogram,
		CostPerPurchase:    dec(10),
		PurchaseUnit:       measure.UnitKilogram,
		QtyPerPurchaseUnit: decimal.Zero,
	}
	cost, err := LineCost(line)
	require.NoError(t, err)
	assert.True(t, dec(20).Equal(cost), "got %s", cost)
}

func TestLineCostIncompatibleUnits(t *testing.T) {
	line := IngredientLine{
		Quantity:           dec(1),
		Unit:               measure.UnitKilogram,
		CostPerPurchase:    dec(5),
		PurchaseUnit:       measure.UnitPiece,
		QtyPerPurchaseUnit: dec(1),
	}
	_, err := LineCost(line)
	require.ErrorIs(t, err, measure.ErrIncompatibleUnits)
}

func TestRecipeCost(t *testing.T) {
	lines := []IngredientLine{
		{Quantity: dec(500), Unit: measure.UnitGram, CostPerPurchase: dec(18.50), PurchaseUnit: measure.UnitKilogram, QtyPerPurchaseUnit: dec(1)},
		{Quantity: dec(250), Unit: measure.UnitMilliliter, CostPerPurchase: dec(4), PurchaseUnit: measure.UnitLiter, QtyPerPurchaseUnit: dec(1)},
	}
	// 9.25 + 1.00
	total, skipped := RecipeCost(lines)
	assert.Empty(t, skipped)
	assert.True(t, dec(10.25).Equal(total), "got %s", total)
}

func TestRecipeCostSkipsUnconvertibleLines(t *testing.T) {
	lines := []IngredientLine{
		{Quantity: dec(1), Unit: measure.UnitKilogram, CostPerPurchase: dec(10), PurchaseUnit: measure.UnitKilogram, QtyPerPurchaseUnit: dec(1)},
		{Quantity: dec(1), Unit: measure.UnitKilogram, CostPerPurchase: dec(99), PurchaseUnit: measure.UnitLiter, QtyPerPurchaseUnit: dec(1)},
	}
	total, skipped := RecipeCost(lines)
	require.Len(t, skipped, 1)
	assert.True(t, dec(10).Equal(total), "got %s", total)
}

func TestRecipeCostEmpty(t *testing.T) {
	total, skipped := RecipeCost(nil)
	assert.Empty(t, skipped)
	assert.True(t, total.IsZero())
}

func TestRecipeCostIdempotent(t *testing.T) {
	lines := []IngredientLine{
		{Quantity: dec(750), Unit: measure.UnitGram, CostPerPurchase: dec(22), PurchaseUnit: measure.UnitKilogram, QtyPerPurchaseUnit: dec(1)},
	}
	first, _ := RecipeCost(lines)
	second, _ := RecipeCost(lines)
	assert.True(t, first.Equal(second))
}

func TestVariantCost(t *testing.T) {
	extras := []IngredientLine{
		{Quantity: dec(100), Unit: measure.UnitGram, CostPerPurchase: dec(30), PurchaseUnit: measure.UnitKilogram, QtyPerPurchaseUnit: dec(1)},
	}
	// 12.00 base + 3.00 extras
	total, skipped := VariantCost(dec(12), extras)
	assert.Empty(t, skipped)
	assert.True(t, dec(15).Equal(total), "got %s", total)
}

func TestCostPerProductUnit(t *testing.T) {
	assert.True(t, dec(1.25).Equal(CostPerProductUnit(dec(25), 20)))
	// non-positive batch size clamps to 1
	assert.True(t, dec(25).Equal(CostPerProductUnit(dec(25), 0)))
	assert.True(t, dec(25).Equal(CostPerProductUnit(dec(25), -3)))
}

func TestMargin(t *testing.T) {
	// price 15, cost 10 -> 50%
	assert.True(t, dec(50).Equal(Margin(dec(15), dec(10))))
	assert.True(t, Margin(dec(15), decimal.Zero).IsZero())
	assert.True(t, Margin(dec(15), dec(-1)).IsZero())
}
