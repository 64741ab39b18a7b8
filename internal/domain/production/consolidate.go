// internal/domain/production/consolidate.go
package production

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// BatchDemand is one planned batch's contribution to ingredient demand
type BatchDemand struct {
	ProductID  uint
	TotalUnits int
}

// RecipeLine is one ingredient requirement of a product, per produced unit
type RecipeLine struct {
	ItemID     uint
	ItemName   string
	Unit       measure.Unit
	QtyPerUnit decimal.Decimal
}

// StockLevel is the current stock of an inventory item
type StockLevel struct {
	Current decimal.Decimal
}

// ConsolidatedIngredient is the aggregated demand for one distinct
// ingredient across every batch of a production day.
type ConsolidatedIngredient struct {
	ItemID       uint            `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Unit         measure.Unit    `json:"unit"`
	TotalNeeded  decimal.Decimal `json:"total_needed"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Missing      decimal.Decimal `json:"missing"`
	HasEnough    bool            `json:"has_enough"`
}

// toUsageUnit converts a recipe quantity into the unit an item's stock is
// tracked in, so demand accumulation and ledger deductions run in one
// consistent unit. Quantities whose dimension does not match the target
// pass through unchanged.
func toUsageUnit(qty decimal.Decimal, from, to measure.Unit) decimal.Decimal {
	converted, err := measure.Convert(qty, from, to)
	if err != nil {
		return qty
	}
	return converted
}

// Consolidate aggregates ingredient demand across batches. Demand is keyed
// by ingredient item identity, so the same ingredient used by several
// products merges into a single entry. Output is ordered by item ID.
func Consolidate(demands []BatchDemand, recipesByProduct map[uint][]RecipeLine, stockByItem map[uint]StockLevel) []ConsolidatedIngredient {
	totals := make(map[uint]*ConsolidatedIngredient)

	for _, demand := range demands {
		units := decimal.NewFromInt(int64(demand.TotalUnits))
		for _, line := range recipesByProduct[demand.ProductID] {
			needed := line.QtyPerUnit.Mul(units)
			entry, ok := totals[line.ItemID]
			if !ok {
				entry = &ConsolidatedIngredient{
					ItemID:   line.ItemID,
					ItemName: line.ItemName,
					Unit:     line.Unit,
				}
				totals[line.ItemID] = entry
			}
			entry.TotalNeeded = entry.TotalNeeded.Add(needed)
		}
	}

	result := make([]ConsolidatedIngredient, 0, len(totals))
	for itemID, entry := range totals {
		entry.CurrentStock = stockByItem[itemID].Current
		entry.Missing = entry.TotalNeeded.Sub(entry.CurrentStock)
		if entry.Missing.IsNegative() {
			entry.Missing = decimal.Zero
		}
		entry.HasEnough = entry.CurrentStock.GreaterThanOrEqual(entry.TotalNeeded)
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ItemID < result[j].ItemID
	})
	return result
}
