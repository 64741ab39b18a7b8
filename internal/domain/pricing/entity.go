// internal/domain/pricing/entity.go
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client represents a B2B customer of the bakery
type Client struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	ContactName string         `gorm:"size:255" json:"contact_name"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Email       string         `gorm:"size:255" json:"email"`
	Address     string         `gorm:"type:text" json:"address"`
	PriceListID *uint          `gorm:"index" json:"price_list_id"` // nil -> general pricing
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PriceList *PriceList `gorm:"foreignKey:PriceListID" json:"price_list,omitempty"`
}

// PriceList is a named set of per-product prices assignable to clients
type PriceList struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []PriceListItem `gorm:"foreignKey:PriceListID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// PriceListItem is one (product, price) pair of a price list
type PriceListItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PriceListID uint            `gorm:"not null;index:idx_price_list_product,unique" json:"price_list_id"`
	ProductID   uint            `gorm:"not null;index:idx_price_list_product,unique" json:"product_id"`
	Price       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
