// internal/interfaces/http/handlers/kiosk.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/kiosk"
	"gorm.io/gorm"
)

// KioskHandler serves the read-only workshop tablet view
type KioskHandler struct {
	kioskService *kiosk.Service
	config       *config.Config
}

// NewKioskHandler creates a new kiosk handler
func NewKioskHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *KioskHandler {
	return &KioskHandler{
		kioskService: kiosk.NewService(db, redisClient, cfg),
		config:       cfg,
	}
}

// GetTodayView returns today's production board for the workshop tablet
func (h *KioskHandler) GetTodayView(c *gin.Context) {
	view, err := h.kioskService.TodayView(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}
