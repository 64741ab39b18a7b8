// internal/domain/production/consolidate_test.go
package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestConsolidateMergesSharedIngredient(t *testing.T) {
	// Two products both use flour (item 1); milk only in product 20.
	recipes := map[uint][]RecipeLine{
		10: {
			{ItemID: 1, ItemName: "Harina", Unit: measure.UnitGram, QtyPerUnit: dec(400)},
		},
		20: {
			{ItemID: 1, ItemName: "Harina", Unit: measure.UnitGram, QtyPerUnit: dec(250)},
			{ItemID: 2, ItemName: "Leche", Unit: measure.UnitMilliliter, QtyPerUnit: dec(100)},
		},
	}
	stock := map[uint]StockLevel{
		1: {Current: dec(30000)},
		2: {Current: dec(500)},
	}
	demands := []BatchDemand{
		{ProductID: 10, TotalUnits: 50},
		{ProductID: 20, TotalUnits: 20},
	}

	result := Consolidate(demands, recipes, stock)
	require.Len(t, result, 2)

	flour := result[0]
	assert.Equal(t, uint(1), flour.ItemID)
	// 400*50 + 250*20 = 25000
	assert.True(t, dec(25000).Equal(flour.TotalNeeded), "got %s", flour.TotalNeeded)
	assert.True(t, flour.HasEnough)
	assert.True(t, flour.Missing.IsZero())

	milk := result[1]
	assert.Equal(t, uint(2), milk.ItemID)
	// 100*20 = 2000 needed, 500 on hand -> 1500 missing
	assert.True(t, dec(2000).Equal(milk.TotalNeeded))
	assert.False(t, milk.HasEnough)
	assert.True(t, dec(1500).Equal(milk.Missing), "got %s", milk.Missing)
}

func TestConsolidateAccumulatesAcrossBatchesOfSameProduct(t *testing.T) {
	recipes := map[uint][]RecipeLine{
		10: {{ItemID: 1, ItemName: "Harina", Unit: measure.UnitGram, QtyPerUnit: dec(400)}},
	}
	demands := []BatchDemand{
		{ProductID: 10, TotalUnits: 20},
		{ProductID: 10, TotalUnits: 20},
		{ProductID: 10, TotalUnits: 5},
	}

	result := Consolidate(demands, recipes, map[uint]StockLevel{})
	require.Len(t, result, 1)
	assert.True(t, dec(18000).Equal(result[0].TotalNeeded), "got %s", result[0].TotalNeeded)
	assert.False(t, result[0].HasEnough)
	assert.True(t, dec(18000).Equal(result[0].Missing))
}

func TestConsolidateProductWithoutRecipe(t *testing.T) {
	demands := []BatchDemand{{ProductID: 99, TotalUnits: 10}}
	result := Consolidate(demands, map[uint][]RecipeLine{}, map[uint]StockLevel{})
	assert.Empty(t, result)
}

func TestConsolidateExactStockIsEnough(t *testing.T) {
	recipes := map[uint][]RecipeLine{
		10: {{ItemID: 1, ItemName: "Azucar", Unit: measure.UnitGram, QtyPerUnit: dec(50)}},
	}
	stock := map[uint]StockLevel{1: {Current: dec(500)}}
	result := Consolidate([]BatchDemand{{ProductID: 10, TotalUnits: 10}}, recipes, stock)

	require.Len(t, result, 1)
	assert.True(t, result[0].HasEnough)
	assert.True(t, result[0].Missing.IsZero())
}

func TestConsolidateDeterministicOrder(t *testing.T) {
	recipes := map[uint][]RecipeLine{
		10: {
			{ItemID: 7, ItemName: "Sal", Unit: measure.UnitGram, QtyPerUnit: dec(5)},
			{ItemID: 3, ItemName: "Levadura", Unit: measure.UnitGram, QtyPerUnit: dec(10)},
			{ItemID: 5, ItemName: "Agua", Unit: measure.UnitMilliliter, QtyPerUnit: dec(200)},
		},
	}
	demands := []BatchDemand{{ProductID: 10, TotalUnits: 1}}

	first := Consolidate(demands, recipes, map[uint]StockLevel{})
	second := Consolidate(demands, recipes, map[uint]StockLevel{})
	assert.Equal(t, first, second)

	ids := []uint{first[0].ItemID, first[1].ItemID, first[2].ItemID}
	assert.Equal(t, []uint{3, 5, 7}, ids)
}

func TestToUsageUnit(t *testing.T) {
	// Recipe in grams, stock tracked in kilograms
	assert.True(t, dec(2.5).Equal(toUsageUnit(dec(2500), measure.UnitGram, measure.UnitKilogram)))

	// Same unit passes through
	assert.True(t, dec(750).Equal(toUsageUnit(dec(750), measure.UnitMilliliter, measure.UnitMilliliter)))

	// Mismatched dimensions keep the raw number
	assert.True(t, dec(3).Equal(toUsageUnit(dec(3), measure.UnitPiece, measure.UnitKilogram)))
}

func TestConsolidateMergesMixedUnitsAfterNormalization(t *testing.T) {
	// One product weighs flour in grams, the other in kilograms. After
	// normalizing to the item's usage unit (kg) the demand merges cleanly.
	recipes := map[uint][]RecipeLine{
		10: {{ItemID: 1, ItemName: "Harina", Unit: measure.UnitKilogram,
			QtyPerUnit: toUsageUnit(dec(400), measure.UnitGram, measure.UnitKilogram)}},
		20: {{ItemID: 1, ItemName: "Harina", Unit: measure.UnitKilogram,
			QtyPerUnit: toUsageUnit(dec(1.2), measure.UnitKilogram, measure.UnitKilogram)}},
	}
	stock := map[uint]StockLevel{1: {Current: dec(10)}}
	demands := []BatchDemand{
		{ProductID: 10, TotalUnits: 10}, // 10 * 0.4 kg = 4 kg
		{ProductID: 20, TotalUnits: 5},  // 5 * 1.2 kg = 6 kg
	}

	result := Consolidate(demands, recipes, stock)
	require.Len(t, result, 1)
	assert.Equal(t, measure.UnitKilogram, result[0].Unit)
	assert.True(t, dec(10).Equal(result[0].TotalNeeded), result[0].TotalNeeded.String())
	assert.True(t, result[0].HasEnough)
}
