// internal/domain/product/service.go
package product

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/costing"
	"github.com/rlaaron/trosset-app/internal/domain/inventory"
	"github.com/rlaaron/trosset-app/internal/domain/measure"
)

// Service handles product catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BatchSize   int             `json:"batch_size" binding:"required"`
	HasVariants bool            `json:"has_variants"`
}

// RecipeLineRequest is one ingredient line of a product recipe
type RecipeLineRequest struct {
	ItemID   uint            `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     measure.Unit    `json:"unit" binding:"required"`
}

// VariantRequest represents variant creation data
type VariantRequest struct {
	Name             string              `json:"name" binding:"required"`
	ExtraIngredients []RecipeLineRequest `json:"extra_ingredients"`
}

// PhaseRequest represents production phase creation data
type PhaseRequest struct {
	Sequence        int              `json:"sequence" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	DurationMinutes *int             `json:"duration_minutes"`
	Triggers        []TriggerRequest `json:"triggers"`
}

// TriggerRequest represents one timed instruction of a phase
type TriggerRequest struct {
	TriggerTimeSeconds int         `json:"trigger_time_seconds"`
	Type               TriggerType `json:"type" binding:"required"`
	Instruction        string      `json:"instruction" binding:"required"`
}

// ProductCostBreakdown is the derived costing view of a product
type ProductCostBreakdown struct {
	ProductID     uint            `json:"product_id"`
	RecipeCost    decimal.Decimal `json:"recipe_cost"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	Price         decimal.Decimal `json:"price"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	SkippedLines  int             `json:"skipped_lines"` // lines with unconvertible units
}

// VariantCostBreakdown is the derived costing view of a variant
type VariantCostBreakdown struct {
	VariantID    uint            `json:"variant_id"`
	BaseCost     decimal.Decimal `json:"base_cost"`
	ExtraCost    decimal.Decimal `json:"extra_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	SkippedLines int             `json:"skipped_lines"`
}

// PRODUCTS

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	if req.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}

	product := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BatchSize:   req.BatchSize,
		HasVariants: req.HasVariants,
		IsActive:    true,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// GetProduct retrieves one product with recipe, variants and phases
func (s *Service) GetProduct(productID uint) (*Product, error) {
	var product Product
	err := s.db.
		Preload("Recipe", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Variants.ExtraIngredients").
		Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Phases.Triggers", func(db *gorm.DB) *gorm.DB { return db.Order("trigger_time_seconds ASC") }).
		First(&product, productID).Error
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &product, nil
}

// GetProducts retrieves products, optionally only active ones
func (s *Service) GetProducts(activeOnly bool) ([]Product, error) {
	query := s.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// UpdateProduct updates a product's descriptive fields
func (s *Service) UpdateProduct(productID uint, req *CreateProductRequest) (*Product, error) {
	if req.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.BatchSize = req.BatchSize
	product.HasVariants = req.HasVariants

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// SetActive toggles whether a product can be ordered and planned
func (s *Service) SetActive(productID uint, active bool) error {
	result := s.db.Model(&Product{}).Where("id = ?", productID).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// RECIPES

// SetRecipe replaces a product's recipe
func (s *Service) SetRecipe(productID uint, lines []RecipeLineRequest) error {
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return fmt.Errorf("product not found")
	}

	for _, line := range lines {
		if !line.Unit.IsValid() {
			return fmt.Errorf("invalid unit %q", line.Unit)
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("recipe quantity must be positive")
		}
		var count int64
		if err := s.db.Model(&inventory.InventoryItem{}).Where("id = ?", line.ItemID).Count(&count).Error; err != nil || count == 0 {
			return fmt.Errorf("inventory item %d not found", line.ItemID)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&ProductRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe: %w", err)
		}
		for i, line := range lines {
			row := ProductRecipe{
				ProductID: productID,
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				Unit:      line.Unit,
				SortOrder: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save recipe line: %w", err)
			}
		}
		return nil
	})
}

// VARIANTS

// CreateVariant adds a variant with its extra ingredients
func (s *Service) CreateVariant(productID uint, req *VariantRequest) (*ProductVariant, error) {
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	var maxOrder int64
	s.db.Model(&ProductVariant{}).Where("product_id = ?", productID).Count(&maxOrder)

	variant := &ProductVariant{
		ProductID: productID,
		Name:      req.Name,
		SortOrder: int(maxOrder),
		IsActive:  true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(variant).Error; err != nil {
			return fmt.Errorf("failed to create variant: %w", err)
		}
		for _, line := range req.ExtraIngredients {
			if !line.Unit.IsValid() {
				return fmt.Errorf("invalid unit %q", line.Unit)
			}
			row := VariantIngredient{
				VariantID: variant.ID,
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				Unit:      line.Unit,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save variant ingredient: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !product.HasVariants {
		s.db.Model(&product).Update("has_variants", true)
	}
	return variant, nil
}

// DeleteVariant soft-deletes a variant
func (s *Service) DeleteVariant(variantID uint) error {
	if err := s.db.Delete(&ProductVariant{}, variantID).Error; err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	return nil
}

// PHASES

// SetPhases replaces a product's production phases and their triggers.
// Sequences must be unique; triggers must not have negative offsets.
func (s *Service) SetPhases(productID uint, phases []PhaseRequest) error {
	var product Product
	if err := s.db.First(&product, productID).Error; err != nil {
		return fmt.Errorf("product not found")
	}

	seen := make(map[int]bool, len(phases))
	for _, phase := range phases {
		if seen[phase.Sequence] {
			return fmt.Errorf("duplicate phase sequence %d", phase.Sequence)
		}
		seen[phase.Sequence] = true
		for _, trigger := range phase.Triggers {
			if trigger.TriggerTimeSeconds < 0 {
				return fmt.Errorf("trigger time must not be negative")
			}
			if !trigger.Type.IsValid() {
				return fmt.Errorf("invalid trigger type %q", trigger.Type)
			}
		}
	}

	ordered := append([]PhaseRequest(nil), phases...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })

	return s.db.Transaction(func(tx *gorm.DB) error {
		var oldPhases []ProductionPhase
		if err := tx.Where("product_id = ?", productID).Find(&oldPhases).Error; err != nil {
			return fmt.Errorf("failed to load phases: %w", err)
		}
		for _, old := range oldPhases {
			if err := tx.Where("phase_id = ?", old.ID).Delete(&PhaseTrigger{}).Error; err != nil {
				return fmt.Errorf("failed to clear triggers: %w", err)
			}
		}
		if err := tx.Unscoped().Where("product_id = ?", productID).Delete(&ProductionPhase{}).Error; err != nil {
			return fmt.Errorf("failed to clear phases: %w", err)
		}

		for _, phase := range ordered {
			row := ProductionPhase{
				ProductID:       productID,
				Sequence:        phase.Sequence,
				Name:            phase.Name,
				DurationMinutes: phase.DurationMinutes,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save phase: %w", err)
			}
			triggers := append([]TriggerRequest(nil), phase.Triggers...)
			sort.Slice(triggers, func(i, j int) bool {
				return triggers[i].TriggerTimeSeconds < triggers[j].TriggerTimeSeconds
			})
			for _, trigger := range triggers {
				t := PhaseTrigger{
					PhaseID:            row.ID,
					TriggerTimeSeconds: trigger.TriggerTimeSeconds,
					Type:               trigger.Type,
					Instruction:        trigger.Instruction,
				}
				if err := tx.Create(&t).Error; err != nil {
					return fmt.Errorf("failed to save trigger: %w", err)
				}
			}
		}
		return nil
	})
}

// COSTING

// recipeLinesToCosting joins recipe lines with their inventory items
func (s *Service) recipeLinesToCosting(itemID func(i int) uint, qty func(i int) decimal.Decimal, unit func(i int) measure.Unit, n int) ([]costing.IngredientLine, error) {
	lines := make([]costing.IngredientLine, 0, n)
	for i := 0; i < n; i++ {
		var item inventory.InventoryItem
		if err := s.db.First(&item, itemID(i)).Error; err != nil {
			return nil, fmt.Errorf("inventory item %d not found", itemID(i))
		}
		lines = append(lines, costing.IngredientLine{
			Quantity:           qty(i),
			Unit:               unit(i),
			CostPerPurchase:    item.CostPerPurchase,
			PurchaseUnit:       item.PurchaseUnit,
			QtyPerPurchaseUnit: item.QtyPerPurchaseUnit,
		})
	}
	return lines, nil
}

// ProductCost computes the derived cost breakdown of a product. Recipe
// lines whose units cannot be reconciled with the item's purchase unit are
// skipped and counted, matching the data-entry screens that flag them.
func (s *Service) ProductCost(productID uint) (*ProductCostBreakdown, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	recipe := product.Recipe
	lines, err := s.recipeLinesToCosting(
		func(i int) uint { return recipe[i].ItemID },
		func(i int) decimal.Decimal { return recipe[i].Quantity },
		func(i int) measure.Unit { return recipe[i].Unit },
		len(recipe),
	)
	if err != nil {
		return nil, err
	}

	total, skipped := costing.RecipeCost(lines)
	perUnit := costing.CostPerProductUnit(total, product.BatchSize)

	return &ProductCostBreakdown{
		ProductID:     product.ID,
		RecipeCost:    total,
		CostPerUnit:   perUnit,
		Price:         product.Price,
		MarginPercent: costing.Margin(product.Price, perUnit),
		SkippedLines:  len(skipped),
	}, nil
}

// VariantCost computes a variant's derived cost: the base product recipe
// cost plus the extra ingredients. Never read from a stored column.
func (s *Service) VariantCost(variantID uint) (*VariantCostBreakdown, error) {
	var variant ProductVariant
	if err := s.db.Preload("ExtraIngredients").First(&variant, variantID).Error; err != nil {
		return nil, fmt.Errorf("variant not found")
	}

	base, err := s.ProductCost(variant.ProductID)
	if err != nil {
		return nil, err
	}

	extras := variant.ExtraIngredients
	lines, err := s.recipeLinesToCosting(
		func(i int) uint { return extras[i].ItemID },
		func(i int) decimal.Decimal { return extras[i].Quantity },
		func(i int) measure.Unit { return extras[i].Unit },
		len(extras),
	)
	if err != nil {
		return nil, err
	}

	total, skipped := costing.VariantCost(base.RecipeCost, lines)

	return &VariantCostBreakdown{
		VariantID:    variant.ID,
		BaseCost:     base.RecipeCost,
		ExtraCost:    total.Sub(base.RecipeCost),
		TotalCost:    total,
		SkippedLines: base.SkippedLines + len(skipped),
	}, nil
}
