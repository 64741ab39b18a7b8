// internal/domain/measure/units.go
package measure

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit represents a unit of measure used for purchasing and recipes
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitMilligram  Unit = "mg"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "pz"
	UnitBundle     Unit = "bulto"
	UnitBox        Unit = "caja"
	UnitSack       Unit = "saco"
)

// Dimension groups units that can be converted into each other
type Dimension string

const (
	DimensionWeight Dimension = "weight"
	DimensionVolume Dimension = "volume"
	DimensionPiece  Dimension = "piece"
)

// ErrIncompatibleUnits is returned when converting across dimension groups.
// Callers are expected to skip or flag the offending line, not abort.
var ErrIncompatibleUnits = errors.New("incompatible units of measure")

// ErrUnknownUnit is returned for units outside the supported set
var ErrUnknownUnit = errors.New("unknown unit of measure")

// factorToBase maps each convertible unit to its dimension base
// (kg for weight, L for volume). Piece-family units carry factor 1 but are
// only ever convertible to themselves.
var factorToBase = map[Unit]decimal.Decimal{
	UnitKilogram:  decimal.NewFromInt(1),
	UnitGram:      decimal.NewFromFloat(0.001),
	UnitMilligram: decimal.NewFromFloat(0.000001),
	UnitLiter:     decimal.NewFromInt(1),
	UnitMilliliter: decimal.NewFromFloat(0.001),
	UnitPiece:     decimal.NewFromInt(1),
	UnitBundle:    decimal.NewFromInt(1),
	UnitBox:       decimal.NewFromInt(1),
	UnitSack:      decimal.NewFromInt(1),
}

var dimensions = map[Unit]Dimension{
	UnitKilogram:  DimensionWeight,
	UnitGram:      DimensionWeight,
	UnitMilligram: DimensionWeight,
	UnitLiter:     DimensionVolume,
	UnitMilliliter: DimensionVolume,
	UnitPiece:     DimensionPiece,
	UnitBundle:    DimensionPiece,
	UnitBox:       DimensionPiece,
	UnitSack:      DimensionPiece,
}

// IsValid reports whether u is one of the supported units
func (u Unit) IsValid() bool {
	_, ok := dimensions[u]
	return ok
}

// DimensionOf returns the dimension group of a unit
func DimensionOf(u Unit) (Dimension, error) {
	dim, ok := dimensions[u]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	return dim, nil
}

// AreCompatible reports whether a quantity in one unit can be expressed in
// the other. Weight and volume units convert freely within their group;
// piece-family units are each their own singleton group, so they are only
// compatible with themselves.
func AreCompatible(a, b Unit) bool {
	dimA, okA := dimensions[a]
	dimB, okB := dimensions[b]
	if !okA || !okB {
		return false
	}
	if dimA != dimB {
		return false
	}
	if dimA == DimensionPiece {
		return a == b
	}
	return true
}

// Convert converts a quantity between compatible units. Identity conversion
// is exact; otherwise the quantity goes through the dimension base.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !from.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	if !to.IsValid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if from == to {
		return qty, nil
	}
	if !AreCompatible(from, to) {
		return decimal.Zero, fmt.Errorf("%w: %q -> %q", ErrIncompatibleUnits, from, to)
	}
	inBase := qty.Mul(factorToBase[from])
	return inBase.Div(factorToBase[to]), nil
}

// UnitCost computes the cost of one target unit given the cost of one
// purchase unit. A purchase cost of 12 per kg yields 0.012 per g.
func UnitCost(purchaseCost decimal.Decimal, purchaseUnit, target Unit) (decimal.Decimal, error) {
	perPurchase, err := Convert(decimal.NewFromInt(1), purchaseUnit, target)
	if err != nil {
		return decimal.Zero, err
	}
	if perPurchase.IsZero() {
		return decimal.Zero, fmt.Errorf("conversion factor %q -> %q is zero", purchaseUnit, target)
	}
	return purchaseCost.Div(perPurchase), nil
}
