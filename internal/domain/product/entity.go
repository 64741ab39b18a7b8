// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// TriggerType classifies how a phase trigger is presented on the kiosk
type TriggerType string

const (
	TriggerInformational    TriggerType = "informational"
	TriggerActionCheckbox   TriggerType = "action_checkbox"
	TriggerBlockingCheckbox TriggerType = "blocking_checkbox"
)

// IsValid reports whether the trigger type is one of the known kinds
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerInformational, TriggerActionCheckbox, TriggerBlockingCheckbox:
		return true
	}
	return false
}

// Product represents a sellable, produced item
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"price"`
	BatchSize   int             `gorm:"not null" json:"batch_size"` // units per production run
	HasVariants bool            `gorm:"default:false" json:"has_variants"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Recipe   []ProductRecipe   `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"recipe,omitempty"`
	Variants []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
	Phases   []ProductionPhase `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"phases,omitempty"`
}

// ProductRecipe is one ingredient requirement of a product, per produced unit
type ProductRecipe struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	Unit      measure.Unit    `gorm:"not null;size:10" json:"unit"`
	SortOrder int             `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// ProductVariant is a named variation of a product. Its extra cost is
// always derived from the extra ingredients on read, never stored.
type ProductVariant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	ExtraIngredients []VariantIngredient `gorm:"foreignKey:VariantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"extra_ingredients,omitempty"`
}

// VariantIngredient is one extra ingredient a variant adds on top of the
// base recipe.
type VariantIngredient struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	VariantID uint            `gorm:"not null;index" json:"variant_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	Unit      measure.Unit    `gorm:"not null;size:10" json:"unit"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductionPhase is one step of a product's production run
type ProductionPhase struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProductID       uint           `gorm:"not null;index:idx_phases_product_seq,unique" json:"product_id"`
	Sequence        int            `gorm:"not null;index:idx_phases_product_seq,unique" json:"sequence"`
	Name            string         `gorm:"not null;size:255" json:"name"`
	DurationMinutes *int           `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Triggers []PhaseTrigger `gorm:"foreignKey:PhaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"triggers,omitempty"`
}

// PhaseTrigger is a timed instruction inside a phase, offset from the
// phase start. Triggers are always served in ascending time order.
type PhaseTrigger struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	PhaseID            uint        `gorm:"not null;index" json:"phase_id"`
	TriggerTimeSeconds int         `gorm:"not null" json:"trigger_time_seconds"`
	Type               TriggerType `gorm:"not null;size:30" json:"type"`
	Instruction        string      `gorm:"type:text;not null" json:"instruction"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
