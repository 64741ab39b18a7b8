// internal/domain/inventory/service_test.go
package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCycleFrom(t *testing.T) {
	tests := []struct {
		name  string
		start uint
		edges map[uint][]uint
		want  bool
	}{
		{
			name:  "no edges",
			start: 1,
			edges: map[uint][]uint{},
			want:  false,
		},
		{
			name:  "simple chain",
			start: 1,
			edges: map[uint][]uint{1: {2}, 2: {3}},
			want:  false,
		},
		{
			name:  "direct self reference",
			start: 1,
			edges: map[uint][]uint{1: {1}},
			want:  true,
		},
		{
			name:  "two-step cycle",
			start: 1,
			edges: map[uint][]uint{1: {2}, 2: {1}},
			want:  true,
		},
		{
			name:  "deep cycle",
			start: 1,
			edges: map[uint][]uint{1: {2}, 2: {3}, 3: {4}, 4: {1}},
			want:  true,
		},
		{
			name:  "cycle elsewhere does not implicate start",
			start: 1,
			edges: map[uint][]uint{1: {2}, 3: {4}, 4: {3}},
			want:  false,
		},
		{
			name:  "diamond without cycle",
			start: 1,
			edges: map[uint][]uint{1: {2, 3}, 2: {4}, 3: {4}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasCycleFrom(tt.start, tt.edges))
		})
	}
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
		wantErr bool
	}{
		{"purchase adds stock", 10, 5, 15, false},
		{"usage subtracts stock", 10, -4, 6, false},
		{"exact drain to zero", 10, -10, 0, false},
		{"overdraw rejected", 10, -15, 0, true},
		{"overdraw from zero rejected", 0, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyDelta(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.delta))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInsufficientStock)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), got.String())
		})
	}
}

func TestMovementTypeIsValid(t *testing.T) {
	valid := []MovementType{
		MovementTypePurchase,
		MovementTypeAdjustment,
		MovementTypeProductionUsage,
		MovementTypeWaste,
	}
	for _, mt := range valid {
		assert.True(t, mt.IsValid(), string(mt))
	}
	assert.False(t, MovementType("sale").IsValid())
	assert.False(t, MovementType("").IsValid())
}

func TestItemStockHelpers(t *testing.T) {
	item := InventoryItem{
		CurrentStock: decimal.NewFromInt(10),
		MinimumStock: decimal.NewFromInt(5),
	}
	assert.False(t, item.IsLowStock())
	assert.True(t, item.HasStockFor(decimal.NewFromInt(10)))
	assert.False(t, item.HasStockFor(decimal.NewFromInt(11)))

	item.CurrentStock = decimal.NewFromInt(5)
	assert.True(t, item.IsLowStock())
}
