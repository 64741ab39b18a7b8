// internal/domain/inventory/service.go
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// ErrInsufficientStock is returned when a movement would drive an item's
// stock below zero. Nothing is persisted in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCompositionCycle is returned when a compound composition would
// reference itself, directly or through other compounds.
var ErrCompositionCycle = errors.New("composition cycle detected")

// ErrItemInUse is returned when deleting an item still referenced by a
// recipe or composition.
var ErrItemInUse = errors.New("item is referenced by a recipe or composition")

// Service handles inventory business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateItemRequest represents inventory item creation data
type CreateItemRequest struct {
	Name               string          `json:"name" binding:"required"`
	PurchaseUnit       measure.Unit    `json:"purchase_unit" binding:"required"`
	UsageUnit          measure.Unit    `json:"usage_unit" binding:"required"`
	CostPerPurchase    decimal.Decimal `json:"cost_per_purchase"`
	QtyPerPurchaseUnit decimal.Decimal `json:"qty_per_purchase_unit"`
	MinimumStock       decimal.Decimal `json:"minimum_stock"`
	IsCompound         bool            `json:"is_compound"`
}

// MovementRequest represents a stock ledger entry to apply
type MovementRequest struct {
	ItemID       uint            `json:"item_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	MovementType MovementType    `json:"movement_type" binding:"required"`
	Notes        string          `json:"notes,omitempty"`
	Reference    uuid.UUID       `json:"reference,omitempty"`
}

// CompositionEntry is one line of a compound item's composition
type CompositionEntry struct {
	IngredientID uint            `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// ITEM MANAGEMENT

// CreateItem creates a new inventory item
func (s *Service) CreateItem(req *CreateItemRequest) (*InventoryItem, error) {
	if !req.PurchaseUnit.IsValid() {
		return nil, fmt.Errorf("invalid purchase unit %q", req.PurchaseUnit)
	}
	if !req.UsageUnit.IsValid() {
		return nil, fmt.Errorf("invalid usage unit %q", req.UsageUnit)
	}
	if req.CostPerPurchase.IsNegative() {
		return nil, fmt.Errorf("cost per purchase unit must not be negative")
	}
	qtyPerPack := req.QtyPerPurchaseUnit
	if qtyPerPack.IsZero() {
		qtyPerPack = decimal.NewFromInt(1)
	}
	if qtyPerPack.IsNegative() {
		return nil, fmt.Errorf("quantity per purchase unit must be positive")
	}

	item := &InventoryItem{
		Name:               req.Name,
		PurchaseUnit:       req.PurchaseUnit,
		UsageUnit:          req.UsageUnit,
		CostPerPurchase:    req.CostPerPurchase,
		QtyPerPurchaseUnit: qtyPerPack,
		CurrentStock:       decimal.Zero,
		MinimumStock:       req.MinimumStock,
		IsCompound:         req.IsCompound,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// GetItem retrieves one item with its composition
func (s *Service) GetItem(itemID uint) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.db.Preload("Composition", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Preload("Composition.Ingredient").First(&item, itemID).Error; err != nil {
		return nil, fmt.Errorf("inventory item not found")
	}
	return &item, nil
}

// GetItems retrieves all inventory items
func (s *Service) GetItems() ([]InventoryItem, error) {
	var items []InventoryItem
	if err := s.db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory items: %w", err)
	}
	return items, nil
}

// GetLowStockItems retrieves items at or below their minimum stock
func (s *Service) GetLowStockItems() ([]InventoryItem, error) {
	var items []InventoryItem
	if err := s.db.Where("current_stock <= minimum_stock").Order("name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock items: %w", err)
	}
	return items, nil
}

// UpdateItem updates an item's descriptive fields. Stock is never touched
// here; only ledger movements mutate it.
func (s *Service) UpdateItem(itemID uint, req *CreateItemRequest) (*InventoryItem, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if !req.PurchaseUnit.IsValid() || !req.UsageUnit.IsValid() {
		return nil, fmt.Errorf("invalid unit of measure")
	}
	if req.QtyPerPurchaseUnit.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("quantity per purchase unit must be positive")
	}

	item.Name = req.Name
	item.PurchaseUnit = req.PurchaseUnit
	item.UsageUnit = req.UsageUnit
	item.CostPerPurchase = req.CostPerPurchase
	item.QtyPerPurchaseUnit = req.QtyPerPurchaseUnit
	item.MinimumStock = req.MinimumStock
	item.IsCompound = req.IsCompound

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// DeleteItem soft-deletes an item unless a recipe or composition still
// references it.
func (s *Service) DeleteItem(itemID uint) error {
	var refs int64
	if err := s.db.Table("product_recipes").Where("item_id = ? AND deleted_at IS NULL", itemID).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check recipe references: %w", err)
	}
	if refs == 0 {
		if err := s.db.Table("item_compositions").Where("ingredient_id = ?", itemID).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to check composition references: %w", err)
		}
	}
	if refs > 0 {
		return ErrItemInUse
	}

	if err := s.db.Delete(&InventoryItem{}, itemID).Error; err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// STOCK LEDGER

// applyDelta computes the stock level after a signed movement. A delta
// that would drive stock negative is rejected with ErrInsufficientStock.
func applyDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: stock %s, movement %s", ErrInsufficientStock, current, delta)
	}
	return next, nil
}

// ApplyMovement appends a ledger entry and updates the item's cached stock
// in one transaction. A movement that would drive stock negative is
// rejected with ErrInsufficientStock and leaves no trace.
func (s *Service) ApplyMovement(req *MovementRequest, userID uint) (*StockMovement, error) {
	var movement *StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := s.ApplyMovementTx(tx, req, userID)
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ApplyMovementTx appends a ledger entry inside the caller's transaction.
// Callers that post several movements as one unit (batch completion) share
// a single transaction so a rejected line rolls back every line. The item
// row is locked for the duration so two concurrent movements cannot both
// read the same starting stock.
func (s *Service) ApplyMovementTx(tx *gorm.DB, req *MovementRequest, userID uint) (*StockMovement, error) {
	if !req.MovementType.IsValid() {
		return nil, fmt.Errorf("invalid movement type: %s", req.MovementType)
	}
	if req.Quantity.IsZero() {
		return nil, fmt.Errorf("movement quantity must not be zero")
	}

	var item InventoryItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, req.ItemID).Error; err != nil {
		return nil, fmt.Errorf("inventory item not found")
	}

	previousStock := item.CurrentStock
	newStock, err := applyDelta(previousStock, req.Quantity)
	if err != nil {
		return nil, err
	}

	movement := &StockMovement{
		ItemID:        item.ID,
		MovementType:  req.MovementType,
		Quantity:      req.Quantity,
		PreviousStock: previousStock,
		NewStock:      newStock,
		Notes:         req.Notes,
		Reference:     req.Reference,
		CreatedBy:     userID,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	if err := tx.Model(&item).Update("current_stock", newStock).Error; err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return movement, nil
}

// GetMovements retrieves the ledger for one item, newest first
func (s *Service) GetMovements(itemID uint, limit int) ([]StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var movements []StockMovement
	if err := s.db.Where("item_id = ?", itemID).Order("created_at DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve movements: %w", err)
	}
	return movements, nil
}

// RecalculateStock re-derives an item's cached stock from the ledger sum.
// The ledger is the source of truth; this is the repair path when the
// cached column is suspected stale.
func (s *Service) RecalculateStock(itemID uint) (*InventoryItem, error) {
	var item *InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var locked InventoryItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, itemID).Error; err != nil {
			return fmt.Errorf("inventory item not found")
		}

		var total decimal.NullDecimal
		if err := tx.Model(&StockMovement{}).Where("item_id = ?", itemID).
			Select("SUM(quantity)").Scan(&total).Error; err != nil {
			return fmt.Errorf("failed to sum ledger: %w", err)
		}

		derived := decimal.Zero
		if total.Valid {
			derived = total.Decimal
		}
		if err := tx.Model(&locked).Update("current_stock", derived).Error; err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		locked.CurrentStock = derived
		item = &locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// COMPOUND COMPOSITIONS

// SetComposition replaces a compound item's composition. Self-references
// and indirect cycles through other compounds are rejected.
func (s *Service) SetComposition(compoundID uint, entries []CompositionEntry) error {
	var compound InventoryItem
	if err := s.db.First(&compound, compoundID).Error; err != nil {
		return fmt.Errorf("inventory item not found")
	}
	if !compound.IsCompound {
		return fmt.Errorf("item %q is not a compound mix", compound.Name)
	}

	for _, entry := range entries {
		if entry.IngredientID == compoundID {
			return fmt.Errorf("%w: item references itself", ErrCompositionCycle)
		}
		if entry.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("composition quantity must be positive")
		}
	}

	edges, err := s.compositionEdges()
	if err != nil {
		return err
	}
	// The candidate composition replaces whatever the compound had before.
	edges[compoundID] = nil
	for _, entry := range entries {
		edges[compoundID] = append(edges[compoundID], entry.IngredientID)
	}
	if hasCycleFrom(compoundID, edges) {
		return fmt.Errorf("%w: compound %d", ErrCompositionCycle, compoundID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("compound_item_id = ?", compoundID).Delete(&ItemComposition{}).Error; err != nil {
			return fmt.Errorf("failed to clear composition: %w", err)
		}
		for i, entry := range entries {
			row := ItemComposition{
				CompoundItemID: compoundID,
				IngredientID:   entry.IngredientID,
				Quantity:       entry.Quantity,
				SortOrder:      i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save composition line: %w", err)
			}
		}
		return nil
	})
}

// compositionEdges loads the full compound -> ingredient adjacency map
func (s *Service) compositionEdges() (map[uint][]uint, error) {
	var rows []ItemComposition
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load compositions: %w", err)
	}
	edges := make(map[uint][]uint)
	for _, row := range rows {
		edges[row.CompoundItemID] = append(edges[row.CompoundItemID], row.IngredientID)
	}
	return edges, nil
}

// hasCycleFrom runs a depth-first walk from start and reports whether start
// is reachable from itself through the composition graph.
func hasCycleFrom(start uint, edges map[uint][]uint) bool {
	visited := make(map[uint]bool)
	stack := append([]uint(nil), edges[start]...)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == start {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		stack = append(stack, edges[current]...)
	}
	return false
}
