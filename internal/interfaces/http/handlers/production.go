// internal/interfaces/http/handlers/production.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/inventory"
	"github.com/rlaaron/trosset-app/internal/domain/production"
	"github.com/rlaaron/trosset-app/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ProductionHandler handles production day and batch endpoints
type ProductionHandler struct {
	productionService *production.Service
	config            *config.Config
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(db *gorm.DB, cfg *config.Config) *ProductionHandler {
	return &ProductionHandler{
		productionService: production.NewService(db, cfg),
		config:            cfg,
	}
}

// CreateDay creates a draft production day
func (h *ProductionHandler) CreateDay(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req production.CreateDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	day, err := h.productionService.CreateDay(&req, userID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Production day created successfully",
		"data":    day,
	})
}

// GetDays lists production days, newest first. Supports ?limit= and
// ?date=YYYY-MM-DD for a single day lookup.
func (h *ProductionHandler) GetDays(c *gin.Context) {
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date parameter, expected YYYY-MM-DD",
			})
			return
		}

		day, err := h.productionService.GetDayByDate(date)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": day,
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	days, err := h.productionService.GetDays(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": days,
	})
}

// GetDay retrieves a production day with its orders and batches
func (h *ProductionHandler) GetDay(c *gin.Context) {
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	day, err := h.productionService.GetDay(dayID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": day,
	})
}

// AssignOrders attaches pending orders to a draft production day
func (h *ProductionHandler) AssignOrders(c *gin.Context) {
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.productionService.AssignOrders(dayID, req.OrderIDs); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders assigned successfully",
	})
}

// GenerateBatches partitions the day's demand into capacity-sized batches
func (h *ProductionHandler) GenerateBatches(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	batches, err := h.productionService.GenerateBatches(dayID, userID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Batches generated successfully",
		"data":    batches,
	})
}

// GetIngredientReport returns the consolidated ingredient needs of a day
func (h *ProductionHandler) GetIngredientReport(c *gin.Context) {
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.productionService.IngredientReport(dayID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": report,
	})
}

// PublishDay publishes a draft day to the workshop
func (h *ProductionHandler) PublishDay(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productionService.PublishDay(dayID, userID); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Production day published successfully",
	})
}

// CloseDay closes a published production day
func (h *ProductionHandler) CloseDay(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productionService.CloseDay(dayID, userID); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Production day closed successfully",
	})
}

// StartBatch marks a batch as in progress
func (h *ProductionHandler) StartBatch(c *gin.Context) {
	batchID, ok := parseIDParam(c, "batchId")
	if !ok {
		return
	}

	batch, err := h.productionService.StartBatch(batchID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Batch started successfully",
		"data":    batch,
	})
}

// CompleteBatch completes a batch and consumes its ingredients from stock
func (h *ProductionHandler) CompleteBatch(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	batchID, ok := parseIDParam(c, "batchId")
	if !ok {
		return
	}

	batch, err := h.productionService.CompleteBatch(batchID, userID)
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, inventory.ErrInsufficientStock) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Batch completed successfully",
		"data":    batch,
	})
}

// FailBatchQA marks an in-progress batch as failed quality control
func (h *ProductionHandler) FailBatchQA(c *gin.Context) {
	batchID, ok := parseIDParam(c, "batchId")
	if !ok {
		return
	}

	batch, err := h.productionService.FailBatchQA(batchID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Batch marked as failed QA",
		"data":    batch,
	})
}
