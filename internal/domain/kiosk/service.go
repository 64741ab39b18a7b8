// internal/domain/kiosk/service.go
package kiosk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/inventory"
	"github.com/rlaaron/trosset-app/internal/domain/product"
	"github.com/rlaaron/trosset-app/internal/domain/production"
)

// cacheTTL keeps the tablet board snappy without hammering the database;
// the board refreshes on this cadence anyway.
const cacheTTL = 30 * time.Second

// Service builds the read model for the workshop tablet
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	config *config.Config
}

// NewService creates a new kiosk service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		redis:  redisClient,
		config: cfg,
	}
}

// TriggerView is one timed instruction for the tablet checklist
type TriggerView struct {
	OffsetSeconds int    `json:"offset_seconds"`
	Type          string `json:"type"`
	Instruction   string `json:"instruction"`
	Blocking      bool   `json:"blocking"`
}

// PhaseView is one production phase with its checklist
type PhaseView struct {
	Sequence        int           `json:"sequence"`
	Name            string        `json:"name"`
	DurationMinutes *int          `json:"duration_minutes,omitempty"`
	Triggers        []TriggerView `json:"triggers"`
}

// BatchView is one batch on the tablet board
type BatchView struct {
	BatchID     uint        `json:"batch_id"`
	ProductID   uint        `json:"product_id"`
	ProductName string      `json:"product_name"`
	BatchNumber int         `json:"batch_number"`
	TotalUnits  int         `json:"total_units"`
	Status      string      `json:"status"`
	Phases      []PhaseView `json:"phases"`
}

// LowStockView flags an ingredient running low
type LowStockView struct {
	ItemID       uint            `json:"item_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	Unit         string          `json:"unit"`
}

// DayView is the full tablet board for one production day
type DayView struct {
	DayID          uint           `json:"day_id"`
	ProductionDate time.Time      `json:"production_date"`
	DeliveryDate   time.Time      `json:"delivery_date"`
	Status         string         `json:"status"`
	Batches        []BatchView    `json:"batches"`
	LowStock       []LowStockView `json:"low_stock"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// TodayView returns the board for today's production day, served from the
// redis cache when fresh.
func (s *Service) TodayView(ctx context.Context) (*DayView, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	cacheKey := fmt.Sprintf("kiosk:day:%s", today.Format("2006-01-02"))

	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var view DayView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			return &view, nil
		}
	}

	view, err := s.buildDayView(today)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(view); err == nil {
		s.redis.Set(ctx, cacheKey, payload, cacheTTL)
	}
	return view, nil
}

func (s *Service) buildDayView(date time.Time) (*DayView, error) {
	var day production.ProductionDay
	err := s.db.
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_id ASC, batch_number ASC")
		}).
		Preload("Batches.Product.Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Batches.Product.Phases.Triggers", func(db *gorm.DB) *gorm.DB {
			return db.Order("trigger_time_seconds ASC")
		}).
		Where("production_date = ?", date).
		First(&day).Error
	if err != nil {
		return nil, fmt.Errorf("no production day for %s", date.Format("2006-01-02"))
	}

	view := &DayView{
		DayID:          day.ID,
		ProductionDate: day.ProductionDate,
		DeliveryDate:   day.DeliveryDate,
		Status:         string(day.Status),
		GeneratedAt:    time.Now().UTC(),
	}

	for _, batch := range day.Batches {
		bv := BatchView{
			BatchID:     batch.ID,
			ProductID:   batch.ProductID,
			ProductName: batch.Product.Name,
			BatchNumber: batch.BatchNumber,
			TotalUnits:  batch.TotalUnits,
			Status:      string(batch.Status),
		}
		for _, phase := range batch.Product.Phases {
			pv := PhaseView{
				Sequence:        phase.Sequence,
				Name:            phase.Name,
				DurationMinutes: phase.DurationMinutes,
			}
			for _, trigger := range phase.Triggers {
				pv.Triggers = append(pv.Triggers, TriggerView{
					OffsetSeconds: trigger.TriggerTimeSeconds,
					Type:          string(trigger.Type),
					Instruction:   trigger.Instruction,
					Blocking:      trigger.Type == product.TriggerBlockingCheckbox,
				})
			}
			bv.Phases = append(bv.Phases, pv)
		}
		view.Batches = append(view.Batches, bv)
	}

	var lowItems []inventory.InventoryItem
	if err := s.db.Where("current_stock <= minimum_stock").Order("name ASC").Find(&lowItems).Error; err == nil {
		for _, item := range lowItems {
			view.LowStock = append(view.LowStock, LowStockView{
				ItemID:       item.ID,
				Name:         item.Name,
				CurrentStock: item.CurrentStock,
				MinimumStock: item.MinimumStock,
				Unit:         string(item.UsageUnit),
			})
		}
	}

	return view, nil
}
