// internal/domain/measure/units_test.go
package measure

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Unit
		want bool
	}{
		{"same weight unit", UnitKilogram, UnitKilogram, true},
		{"weight to weight", UnitKilogram, UnitGram, true},
		{"weight to milligram", UnitGram, UnitMilligram, true},
		{"volume to volume", UnitLiter, UnitMilliliter, true},
		{"weight to volume", UnitKilogram, UnitLiter, false},
		{"weight to piece", UnitKilogram, UnitPiece, false},
		{"piece identity", UnitPiece, UnitPiece, true},
		{"piece to other piece", UnitPiece, UnitSack, false},
		{"box to bundle", UnitBox, UnitBundle, false},
		{"unknown unit", Unit("furlong"), UnitKilogram, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AreCompatible(tt.a, tt.b))
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		from, to Unit
		want     float64
		wantErr  error
	}{
		{"kg to g", 2, UnitKilogram, UnitGram, 2000, nil},
		{"g to kg", 500, UnitGram, UnitKilogram, 0.5, nil},
		{"mg to g", 250, UnitMilligram, UnitGram, 0.25, nil},
		{"L to ml", 1.5, UnitLiter, UnitMilliliter, 1500, nil},
		{"ml to L", 330, UnitMilliliter, UnitLiter, 0.33, nil},
		{"identity", 7, UnitSack, UnitSack, 7, nil},
		{"kg to pz", 1, UnitKilogram, UnitPiece, 0, ErrIncompatibleUnits},
		{"pz to saco", 1, UnitPiece, UnitSack, 0, ErrIncompatibleUnits},
		{"kg to L", 1, UnitKilogram, UnitLiter, 0, ErrIncompatibleUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(decimal.NewFromFloat(tt.qty), tt.from, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.NewFromFloat(tt.want).Equal(got),
				"want %v got %s", tt.want, got)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := []struct{ a, b Unit }{
		{UnitKilogram, UnitGram},
		{UnitGram, UnitMilligram},
		{UnitLiter, UnitMilliliter},
		{UnitKilogram, UnitMilligram},
	}

	qty := decimal.NewFromFloat(3.75)
	for _, p := range pairs {
		there, err := Convert(qty, p.a, p.b)
		require.NoError(t, err)
		back, err := Convert(there, p.b, p.a)
		require.NoError(t, err)
		assert.True(t, qty.Equal(back), "%s -> %s -> back: got %s", p.a, p.b, back)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), Unit("stone"), UnitKilogram)
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Convert(decimal.NewFromInt(1), UnitKilogram, Unit("stone"))
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnitCost(t *testing.T) {
	// 24.00 per kg -> 0.024 per g
	cost, err := UnitCost(decimal.NewFromFloat(24), UnitKilogram, UnitGram)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.024).Equal(cost), "got %s", cost)

	// 9.00 per L -> 0.009 per ml
	cost, err = UnitCost(decimal.NewFromFloat(9), UnitLiter, UnitMilliliter)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.009).Equal(cost), "got %s", cost)

	// identity purchase unit
	cost, err = UnitCost(decimal.NewFromFloat(15), UnitSack, UnitSack)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(15).Equal(cost))

	// cross-dimension unit cost is not answerable
	_, err = UnitCost(decimal.NewFromFloat(10), UnitKilogram, UnitPiece)
	require.ErrorIs(t, err, ErrIncompatibleUnits)
}
