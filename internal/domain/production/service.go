// internal/domain/production/service.go
package production

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/inventory"
	"github.com/rlaaron/trosset-app/internal/domain/order"
	"github.com/rlaaron/trosset-app/internal/domain/product"
)

// Service handles production planning business logic
type Service struct {
	db        *gorm.DB
	config    *config.Config
	inventory *inventory.Service
	orders    *order.Service
}

// NewService creates a new production service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		inventory: inventory.NewService(db, cfg),
		orders:    order.NewService(db, cfg),
	}
}

// CreateDayRequest represents production day creation data
type CreateDayRequest struct {
	ProductionDate time.Time `json:"production_date" binding:"required"`
	DeliveryDate   time.Time `json:"delivery_date" binding:"required"`
	Notes          string    `json:"notes"`
}

// PRODUCTION DAYS

// CreateDay creates a draft production day. Production dates are unique.
func (s *Service) CreateDay(req *CreateDayRequest, userID uint) (*ProductionDay, error) {
	date := req.ProductionDate.Truncate(24 * time.Hour)

	var existing ProductionDay
	if err := s.db.Where("production_date = ?", date).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("production day for %s already exists", date.Format("2006-01-02"))
	}

	day := &ProductionDay{
		ProductionDate: date,
		DeliveryDate:   req.DeliveryDate.Truncate(24 * time.Hour),
		Status:         DayStatusDraft,
		Notes:          req.Notes,
		CreatedBy:      userID,
	}
	if err := s.db.Create(day).Error; err != nil {
		return nil, fmt.Errorf("failed to create production day: %w", err)
	}
	return day, nil
}

// GetDay retrieves one production day with orders and batches
func (s *Service) GetDay(dayID uint) (*ProductionDay, error) {
	var day ProductionDay
	err := s.db.
		Preload("Orders.Items").
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_id ASC, batch_number ASC")
		}).
		Preload("Batches.Product").
		First(&day, dayID).Error
	if err != nil {
		return nil, fmt.Errorf("production day not found")
	}
	return &day, nil
}

// GetDayByDate retrieves the production day for a calendar date
func (s *Service) GetDayByDate(date time.Time) (*ProductionDay, error) {
	var day ProductionDay
	if err := s.db.Where("production_date = ?", date.Truncate(24*time.Hour)).First(&day).Error; err != nil {
		return nil, fmt.Errorf("production day not found")
	}
	return s.GetDay(day.ID)
}

// GetDays lists production days, newest first
func (s *Service) GetDays(limit int) ([]ProductionDay, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	var days []ProductionDay
	if err := s.db.Order("production_date DESC").Limit(limit).Find(&days).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve production days: %w", err)
	}
	return days, nil
}

// AssignOrders attaches pending orders to a draft production day
func (s *Service) AssignOrders(dayID uint, orderIDs []uint) error {
	var day ProductionDay
	if err := s.db.First(&day, dayID).Error; err != nil {
		return fmt.Errorf("production day not found")
	}
	if day.Status != DayStatusDraft {
		return fmt.Errorf("orders can only be assigned while the day is draft")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, orderID := range orderIDs {
			var ord order.Order
			if err := tx.First(&ord, orderID).Error; err != nil {
				return fmt.Errorf("order %d not found", orderID)
			}
			if ord.Status != order.OrderStatusPending {
				return fmt.Errorf("order %s is not pending", ord.OrderNumber)
			}
			if err := tx.Model(&ord).Update("production_day_id", dayID).Error; err != nil {
				return fmt.Errorf("failed to assign order: %w", err)
			}
		}
		return nil
	})
}

// GenerateBatches aggregates the day's assigned orders per product, plans
// batches under each product's machine capacity and persists them. The
// assigned orders move to planned. Regeneration is allowed while the day is
// still draft and replaces the previous plan.
func (s *Service) GenerateBatches(dayID uint, userID uint) ([]ProductionBatch, error) {
	day, err := s.GetDay(dayID)
	if err != nil {
		return nil, err
	}
	if day.Status != DayStatusDraft {
		return nil, fmt.Errorf("batches can only be generated while the day is draft")
	}

	// Aggregate ordered units per product across all assigned orders.
	totals := make(map[uint]int)
	for _, ord := range day.Orders {
		if ord.Status == order.OrderStatusCancelled {
			continue
		}
		for _, item := range ord.Items {
			totals[item.ProductID] += item.Quantity
		}
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("no orders assigned to this production day")
	}

	productIDs := make([]uint, 0, len(totals))
	for id := range totals {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	var created []ProductionBatch
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("production_day_id = ?", dayID).Delete(&ProductionBatch{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous batches: %w", err)
		}

		for _, productID := range productIDs {
			var prod product.Product
			if err := tx.First(&prod, productID).Error; err != nil {
				return fmt.Errorf("product %d not found", productID)
			}
			if prod.BatchSize <= 0 {
				return fmt.Errorf("product %q has no valid batch size", prod.Name)
			}

			sizes := PlanBatches(totals[productID], prod.BatchSize)
			for i, size := range sizes {
				batch := ProductionBatch{
					ProductionDayID: dayID,
					ProductID:       productID,
					BatchNumber:     i + 1,
					TotalUnits:      size,
					Status:          BatchStatusPending,
				}
				if err := tx.Create(&batch).Error; err != nil {
					return fmt.Errorf("failed to create batch: %w", err)
				}
				created = append(created, batch)
			}
		}

		for _, ord := range day.Orders {
			if ord.Status != order.OrderStatusPending {
				continue
			}
			if err := tx.Model(&order.Order{}).Where("id = ?", ord.ID).Update("status", order.OrderStatusPlanned).Error; err != nil {
				return fmt.Errorf("failed to mark order planned: %w", err)
			}
			history := order.OrderStatusHistory{
				OrderID:   ord.ID,
				Status:    order.OrderStatusPlanned,
				Comment:   fmt.Sprintf("assigned to production day %s", day.ProductionDate.Format("2006-01-02")),
				CreatedBy: userID,
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IngredientReport consolidates ingredient demand across the day's batches
// and compares it with current stock.
func (s *Service) IngredientReport(dayID uint) ([]ConsolidatedIngredient, error) {
	day, err := s.GetDay(dayID)
	if err != nil {
		return nil, err
	}

	demands := make([]BatchDemand, 0, len(day.Batches))
	productIDs := make(map[uint]bool)
	for _, batch := range day.Batches {
		demands = append(demands, BatchDemand{ProductID: batch.ProductID, TotalUnits: batch.TotalUnits})
		productIDs[batch.ProductID] = true
	}

	recipes := make(map[uint][]RecipeLine, len(productIDs))
	stock := make(map[uint]StockLevel)
	for productID := range productIDs {
		var lines []product.ProductRecipe
		if err := s.db.Where("product_id = ?", productID).Order("sort_order ASC").Find(&lines).Error; err != nil {
			return nil, fmt.Errorf("failed to load recipe for product %d: %w", productID, err)
		}
		for _, line := range lines {
			var item inventory.InventoryItem
			if err := s.db.First(&item, line.ItemID).Error; err != nil {
				return nil, fmt.Errorf("inventory item %d not found", line.ItemID)
			}
			// Demand is expressed in the item's usage unit so lines from
			// different products (g vs kg) accumulate correctly and stock
			// comparisons are unit-consistent.
			recipes[productID] = append(recipes[productID], RecipeLine{
				ItemID:     line.ItemID,
				ItemName:   item.Name,
				Unit:       item.UsageUnit,
				QtyPerUnit: toUsageUnit(line.Quantity, line.Unit, item.UsageUnit),
			})
			stock[line.ItemID] = StockLevel{Current: item.CurrentStock}
		}
	}

	return Consolidate(demands, recipes, stock), nil
}

// PublishDay publishes a draft day and moves its planned orders into
// production. Batches stay pending until the workshop starts them.
func (s *Service) PublishDay(dayID uint, userID uint) error {
	return s.updateDayStatus(dayID, DayStatusPublished, func(tx *gorm.DB, day *ProductionDay) error {
		var orders []order.Order
		if err := tx.Where("production_day_id = ? AND status = ?", dayID, order.OrderStatusPlanned).Find(&orders).Error; err != nil {
			return fmt.Errorf("failed to load day orders: %w", err)
		}
		for _, ord := range orders {
			if err := tx.Model(&order.Order{}).Where("id = ?", ord.ID).Update("status", order.OrderStatusInProduction).Error; err != nil {
				return fmt.Errorf("failed to move order into production: %w", err)
			}
			history := order.OrderStatusHistory{
				OrderID:   ord.ID,
				Status:    order.OrderStatusInProduction,
				Comment:   "production day published",
				CreatedBy: userID,
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to create status history: %w", err)
			}
		}
		return nil
	})
}

// CloseDay closes a published day
func (s *Service) CloseDay(dayID uint, userID uint) error {
	return s.updateDayStatus(dayID, DayStatusClosed, nil)
}

func (s *Service) updateDayStatus(dayID uint, target DayStatus, extra func(tx *gorm.DB, day *ProductionDay) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var day ProductionDay
		if err := tx.First(&day, dayID).Error; err != nil {
			return fmt.Errorf("production day not found")
		}
		if !day.Status.CanTransitionTo(target) {
			return fmt.Errorf("invalid day status transition from %s to %s", day.Status, target)
		}
		if err := tx.Model(&day).Update("status", target).Error; err != nil {
			return fmt.Errorf("failed to update day status: %w", err)
		}
		if extra != nil {
			return extra(tx, &day)
		}
		return nil
	})
}

// BATCHES

// StartBatch moves a pending batch into progress
func (s *Service) StartBatch(batchID uint) (*ProductionBatch, error) {
	return s.transitionBatch(batchID, BatchStatusInProgress, func(batch *ProductionBatch) map[string]interface{} {
		now := time.Now().UTC()
		return map[string]interface{}{"status": BatchStatusInProgress, "started_at": &now}
	})
}

// CompleteBatch finishes an in-progress batch and posts production_usage
// ledger movements for its recipe demand. Everything runs in one
// transaction, so a movement that would drive any ingredient's stock
// negative aborts the whole completion with no ledger entry persisted.
func (s *Service) CompleteBatch(batchID uint, userID uint) (*ProductionBatch, error) {
	var batch ProductionBatch
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&batch, batchID).Error; err != nil {
			return fmt.Errorf("production batch not found")
		}
		if !batch.Status.CanTransitionTo(BatchStatusCompleted) {
			return fmt.Errorf("invalid batch status transition from %s to %s", batch.Status, BatchStatusCompleted)
		}

		var lines []product.ProductRecipe
		if err := tx.Where("product_id = ?", batch.ProductID).Find(&lines).Error; err != nil {
			return fmt.Errorf("failed to load recipe: %w", err)
		}

		reference := uuid.New()
		units := decimal.NewFromInt(int64(batch.TotalUnits))
		for _, line := range lines {
			var item inventory.InventoryItem
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				return fmt.Errorf("inventory item %d not found", line.ItemID)
			}

			qty := toUsageUnit(line.Quantity.Mul(units), line.Unit, item.UsageUnit)
			_, err := s.inventory.ApplyMovementTx(tx, &inventory.MovementRequest{
				ItemID:       line.ItemID,
				Quantity:     qty.Neg(),
				MovementType: inventory.MovementTypeProductionUsage,
				Notes:        fmt.Sprintf("batch %d completion", batch.ID),
				Reference:    reference,
			}, userID)
			if err != nil {
				return fmt.Errorf("batch completion aborted: %w", err)
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"status": BatchStatusCompleted, "completed_at": &now}
		if err := tx.Model(&batch).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update batch: %w", err)
		}
		batch.Status = BatchStatusCompleted
		batch.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// FailBatchQA marks an in-progress batch as failed quality control. There
// is no automatic trigger for this; it is always an explicit action.
func (s *Service) FailBatchQA(batchID uint) (*ProductionBatch, error) {
	return s.transitionBatch(batchID, BatchStatusQAFailed, func(batch *ProductionBatch) map[string]interface{} {
		return map[string]interface{}{"status": BatchStatusQAFailed}
	})
}

func (s *Service) transitionBatch(batchID uint, target BatchStatus, updates func(*ProductionBatch) map[string]interface{}) (*ProductionBatch, error) {
	var batch ProductionBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		return nil, fmt.Errorf("production batch not found")
	}
	if !batch.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("invalid batch status transition from %s to %s", batch.Status, target)
	}
	if err := s.db.Model(&batch).Updates(updates(&batch)).Error; err != nil {
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	batch.Status = target
	return &batch, nil
}
