// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/domain/pricing"
	"github.com/rlaaron/trosset-app/internal/domain/product"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusPlanned      OrderStatus = "planned"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// validTransitions is the order state machine. Transitions are explicit
// user actions; nothing moves an order automatically.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusPlanned, OrderStatusCancelled},
	OrderStatusPlanned:      {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusCompleted},
	OrderStatusCompleted:    {OrderStatusDelivered},
	OrderStatusDelivered:    {},
	OrderStatusCancelled:    {},
}

// CanTransitionTo reports whether the state machine allows moving from the
// current status to the target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Order represents a customer order for a delivery date
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	ClientID        uint            `gorm:"not null;index" json:"client_id"`
	DeliveryDate    time.Time       `gorm:"not null;index" json:"delivery_date"`
	Status          OrderStatus     `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"total_amount"` // derived from items
	Notes           string          `gorm:"type:text" json:"notes"`
	ProductionDayID *uint           `gorm:"index" json:"production_day_id"`
	CreatedBy       uint            `gorm:"index" json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Client        pricing.Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem is one product line of an order. UnitPrice is frozen at order
// time; later price list changes never touch existing orders.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	VariantID *uint           `gorm:"index" json:"variant_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPlanned
}

// CanBeDeleted checks if the order can be removed entirely
func (o *Order) CanBeDeleted() bool {
	return o.Status == OrderStatusPending
}
