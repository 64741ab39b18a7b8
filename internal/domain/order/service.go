// internal/domain/order/service.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/pricing"
	"github.com/rlaaron/trosset-app/internal/domain/product"
)

// Service handles order business logic
type Service struct {
	db      *gorm.DB
	config  *config.Config
	pricing *pricing.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		pricing: pricing.NewService(db, cfg),
	}
}

// CreateOrderItemRequest is one product line of a new order
type CreateOrderItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	ClientID     uint                     `json:"client_id" binding:"required"`
	DeliveryDate time.Time                `json:"delivery_date" binding:"required"`
	Notes        string                   `json:"notes"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1"`
}

// CreateOrder creates an order, resolving and freezing each item's unit
// price through the client's price list at this moment. Totals are derived
// from the items inside the same transaction.
func (s *Service) CreateOrder(req *CreateOrderRequest, userID uint) (*Order, error) {
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
	}

	var created *Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ord := &Order{
			ClientID:     req.ClientID,
			DeliveryDate: req.DeliveryDate,
			Status:       OrderStatusPending,
			Notes:        req.Notes,
			TotalAmount:  decimal.Zero,
			CreatedBy:    userID,
		}
		if err := tx.Create(ord).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		total := decimal.Zero
		for _, item := range req.Items {
			var prod product.Product
			if err := tx.First(&prod, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d not found", item.ProductID)
			}
			if !prod.IsActive {
				return fmt.Errorf("product %q is not active", prod.Name)
			}

			unitPrice, err := s.pricing.ResolvePrice(req.ClientID, item.ProductID)
			if err != nil {
				return err
			}

			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			row := OrderItem{
				OrderID:   ord.ID,
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			total = total.Add(subtotal)
		}

		ord.OrderNumber = fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), ord.ID)
		ord.TotalAmount = total
		if err := tx.Model(ord).Updates(map[string]interface{}{
			"order_number": ord.OrderNumber,
			"total_amount": total,
		}).Error; err != nil {
			return fmt.Errorf("failed to finalize order: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   ord.ID,
			Status:    OrderStatusPending,
			Comment:   "order created",
			CreatedBy: userID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}

		created = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(created.ID)
}

// GetOrder retrieves one order with items and history
func (s *Service) GetOrder(orderID uint) (*Order, error) {
	var ord Order
	err := s.db.
		Preload("Client").
		Preload("Items.Product").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&ord, orderID).Error
	if err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &ord, nil
}

// ListFilter narrows order listings
type ListFilter struct {
	ClientID     *uint
	Status       *OrderStatus
	DeliveryDate *time.Time
}

// GetOrders retrieves orders matching the filter, newest first
func (s *Service) GetOrders(filter ListFilter) ([]Order, error) {
	query := s.db.Preload("Items").Order("created_at DESC")
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DeliveryDate != nil {
		day := filter.DeliveryDate.Truncate(24 * time.Hour)
		query = query.Where("delivery_date >= ? AND delivery_date < ?", day, day.Add(24*time.Hour))
	}

	var orders []Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its state machine and records the
// transition in the status history.
func (s *Service) UpdateStatus(orderID uint, target OrderStatus, comment string, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ord Order
		if err := tx.First(&ord, orderID).Error; err != nil {
			return fmt.Errorf("order not found")
		}
		if !ord.Status.CanTransitionTo(target) {
			return fmt.Errorf("invalid status transition from %s to %s", ord.Status, target)
		}

		if err := tx.Model(&ord).Update("status", target).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   orderID,
			Status:    target,
			Comment:   comment,
			CreatedBy: userID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create status history: %w", err)
		}
		return nil
	})
}

// CancelOrder cancels an order while it is still pending or planned
func (s *Service) CancelOrder(orderID uint, reason string, userID uint) error {
	var ord Order
	if err := s.db.First(&ord, orderID).Error; err != nil {
		return fmt.Errorf("order not found")
	}
	if !ord.CanBeCancelled() {
		return fmt.Errorf("order in status %s cannot be cancelled", ord.Status)
	}
	return s.UpdateStatus(orderID, OrderStatusCancelled, reason, userID)
}

// DeleteOrder removes an order; only pending orders may be deleted
func (s *Service) DeleteOrder(orderID uint) error {
	var ord Order
	if err := s.db.First(&ord, orderID).Error; err != nil {
		return fmt.Errorf("order not found")
	}
	if !ord.CanBeDeleted() {
		return fmt.Errorf("order in status %s cannot be deleted", ord.Status)
	}
	if err := s.db.Delete(&ord).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
