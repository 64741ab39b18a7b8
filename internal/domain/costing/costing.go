// internal/domain/costing/costing.go
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// IngredientLine carries everything needed to cost one recipe line: the
// quantity the recipe calls for and how the underlying item is purchased.
type IngredientLine struct {
	Quantity           decimal.Decimal
	Unit               measure.Unit
	CostPerPurchase    decimal.Decimal
	PurchaseUnit       measure.Unit
	QtyPerPurchaseUnit decimal.Decimal
}

var one = decimal.NewFromInt(1)

// LineCost computes the cost of a single recipe line. The recipe quantity is
// converted into purchase-unit terms before multiplying by the purchase
// cost. Returns measure.ErrIncompatibleUnits when the recipe unit and the
// purchase unit belong to different dimension groups.
func LineCost(line IngredientLine) (decimal.Decimal, error) {
	qtyPerPack := line.QtyPerPurchaseUnit
	if qtyPerPack.LessThanOrEqual(decimal.Zero) {
		// Pack size is validated at the data-entry boundary; the clamp keeps
		// the engine total for legacy rows.
		qtyPerPack = one
	}

	qtyInPurchaseUnits, err := measure.Convert(line.Quantity, line.Unit, line.PurchaseUnit)
	if err != nil {
		return decimal.Zero, err
	}

	costPerUnit := line.CostPerPurchase.Div(qtyPerPack)
	return qtyInPurchaseUnits.Mul(costPerUnit), nil
}

// RecipeCost sums the cost of all lines. Lines whose units cannot be
// reconciled are skipped rather than failing the whole recipe; the skipped
// lines are returned so callers can surface them. An empty recipe costs 0.
func RecipeCost(lines []IngredientLine) (decimal.Decimal, []IngredientLine) {
	total := decimal.Zero
	var skipped []IngredientLine
	for _, line := range lines {
		cost, err := LineCost(line)
		if err != nil {
			skipped = append(skipped, line)
			continue
		}
		total = total.Add(cost)
	}
	return total, skipped
}

// VariantCost is the base recipe cost plus the cost of the variant's extra
// ingredients.
func VariantCost(baseCost decimal.Decimal, extras []IngredientLine) (decimal.Decimal, []IngredientLine) {
	extraCost, skipped := RecipeCost(extras)
	return baseCost.Add(extraCost), skipped
}

// CostPerProductUnit spreads a full recipe's cost over the units one
// production run yields. Non-positive batch sizes are clamped to 1; the
// catalog service rejects them before they ever reach here.
func CostPerProductUnit(totalRecipeCost decimal.Decimal, batchSizeUnits int) decimal.Decimal {
	if batchSizeUnits <= 0 {
		batchSizeUnits = 1
	}
	return totalRecipeCost.Div(decimal.NewFromInt(int64(batchSizeUnits)))
}

// Margin returns the margin percentage of a price over a cost, 0 when the
// cost is not positive.
func Margin(price, cost decimal.Decimal) decimal.Decimal {
	if cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return price.Sub(cost).Div(cost).Mul(hundred)
}
