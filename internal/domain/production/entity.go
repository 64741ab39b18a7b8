// internal/domain/production/entity.go
package production

import (
	"time"

	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/domain/order"
	"github.com/rlaaron/trosset-app/internal/domain/product"
)

// DayStatus represents the lifecycle of a production day
type DayStatus string

const (
	DayStatusDraft     DayStatus = "draft"
	DayStatusPublished DayStatus = "published"
	DayStatusClosed    DayStatus = "closed"
)

// dayTransitions is linear: draft -> published -> closed, never backward
var dayTransitions = map[DayStatus][]DayStatus{
	DayStatusDraft:     {DayStatusPublished},
	DayStatusPublished: {DayStatusClosed},
	DayStatusClosed:    {},
}

// CanTransitionTo reports whether the day may move to the target status
func (s DayStatus) CanTransitionTo(target DayStatus) bool {
	for _, allowed := range dayTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// BatchStatus represents the lifecycle of one production batch
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "pending"
	BatchStatusInProgress BatchStatus = "in_progress"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusQAFailed   BatchStatus = "qa_failed"
)

// batchTransitions includes the terminal qa_failed status. Nothing in the
// system triggers it automatically; it is reachable only through an
// explicit QA action on an in-progress batch.
var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchStatusPending:    {BatchStatusInProgress},
	BatchStatusInProgress: {BatchStatusCompleted, BatchStatusQAFailed},
	BatchStatusCompleted:  {},
	BatchStatusQAFailed:   {},
}

// CanTransitionTo reports whether the batch may move to the target status
func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	for _, allowed := range batchTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ProductionDay is one calendar day's production run
type ProductionDay struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ProductionDate time.Time      `gorm:"not null;uniqueIndex" json:"production_date"`
	DeliveryDate   time.Time      `gorm:"not null" json:"delivery_date"`
	Status         DayStatus      `gorm:"not null;default:'draft'" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedBy      uint           `gorm:"index" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders  []order.Order     `gorm:"foreignKey:ProductionDayID" json:"orders,omitempty"`
	Batches []ProductionBatch `gorm:"foreignKey:ProductionDayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"batches,omitempty"`
}

// ProductionBatch is one machine run of a product within a production day.
// Batches are derived by the planner and never hand-edited beyond status
// transitions.
type ProductionBatch struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProductionDayID uint           `gorm:"not null;index" json:"production_day_id"`
	ProductID       uint           `gorm:"not null;index" json:"product_id"`
	BatchNumber     int            `gorm:"not null" json:"batch_number"`
	TotalUnits      int            `gorm:"not null" json:"total_units"`
	Status          BatchStatus    `gorm:"not null;default:'pending'" json:"status"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
