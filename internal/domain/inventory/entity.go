// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypePurchase        MovementType = "purchase"
	MovementTypeAdjustment      MovementType = "adjustment"
	MovementTypeProductionUsage MovementType = "production_usage"
	MovementTypeWaste           MovementType = "waste"
)

// IsValid reports whether the movement type is one of the known kinds
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeAdjustment, MovementTypeProductionUsage, MovementTypeWaste:
		return true
	}
	return false
}

// InventoryItem represents a stockable ingredient or compound mix
type InventoryItem struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"not null;size:255" json:"name"`
	PurchaseUnit       measure.Unit    `gorm:"not null;size:10" json:"purchase_unit"`
	UsageUnit          measure.Unit    `gorm:"not null;size:10" json:"usage_unit"`
	CostPerPurchase    decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"cost_per_purchase"`
	QtyPerPurchaseUnit decimal.Decimal `gorm:"type:numeric(14,4);not null;default:1" json:"qty_per_purchase_unit"`
	CurrentStock       decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"current_stock"`
	MinimumStock       decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"minimum_stock"`
	IsCompound         bool            `gorm:"default:false" json:"is_compound"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Composition []ItemComposition `gorm:"foreignKey:CompoundItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"composition,omitempty"`
	Movements   []StockMovement   `gorm:"foreignKey:ItemID" json:"movements,omitempty"`
}

// ItemComposition links a compound mix to one of its sub-ingredients, with
// the quantity needed per 1 unit of the compound.
type ItemComposition struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CompoundItemID uint            `gorm:"not null;index" json:"compound_item_id"`
	IngredientID   uint            `gorm:"not null;index" json:"ingredient_id"`
	Quantity       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	SortOrder      int             `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relationships
	Ingredient InventoryItem `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// StockMovement is one append-only entry of the stock ledger. The signed
// quantity is the delta applied to the item's stock; PreviousStock/NewStock
// freeze the stock around the movement for auditing.
type StockMovement struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ItemID        uint            `gorm:"not null;index" json:"item_id"`
	MovementType  MovementType    `gorm:"not null;size:30" json:"movement_type"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	PreviousStock decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"previous_stock"`
	NewStock      decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"new_stock"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Reference     uuid.UUID       `gorm:"type:uuid" json:"reference"`
	CreatedBy     uint            `gorm:"index" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relationships
	Item InventoryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName overrides GORM's default pluralization
func (ItemComposition) TableName() string { return "item_compositions" }

// IsLowStock checks if the item sits at or below its minimum stock
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinimumStock)
}

// HasStockFor checks whether the current stock covers a required quantity
func (i *InventoryItem) HasStockFor(qty decimal.Decimal) bool {
	return i.CurrentStock.GreaterThanOrEqual(qty)
}
