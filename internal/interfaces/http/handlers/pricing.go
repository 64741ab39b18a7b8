// internal/interfaces/http/handlers/pricing.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/pricing"
	"gorm.io/gorm"
)

// PricingHandler handles client and price list endpoints
type PricingHandler struct {
	pricingService *pricing.Service
	config         *config.Config
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(db *gorm.DB, cfg *config.Config) *PricingHandler {
	return &PricingHandler{
		pricingService: pricing.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateClient creates a new client
func (h *PricingHandler) CreateClient(c *gin.Context) {
	var req pricing.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	client, err := h.pricingService.CreateClient(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"data":    client,
	})
}

// GetClients lists all clients
func (h *PricingHandler) GetClients(c *gin.Context) {
	clients, err := h.pricingService.GetClients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": clients,
	})
}

// GetClient retrieves a single client
func (h *PricingHandler) GetClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.pricingService.GetClient(clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": client,
	})
}

// UpdateClient updates a client
func (h *PricingHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req pricing.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	client, err := h.pricingService.UpdateClient(clientID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"data":    client,
	})
}

// CreatePriceList creates a price list with its items
func (h *PricingHandler) CreatePriceList(c *gin.Context) {
	var req pricing.CreatePriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	list, err := h.pricingService.CreatePriceList(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Price list created successfully",
		"data":    list,
	})
}

// GetPriceLists lists all price lists with their items
func (h *PricingHandler) GetPriceLists(c *gin.Context) {
	lists, err := h.pricingService.GetPriceLists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": lists,
	})
}

// SetPriceListItems replaces the items of a price list
func (h *PricingHandler) SetPriceListItems(c *gin.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Items []pricing.PriceListItemRequest `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.pricingService.SetPriceListItems(listID, req.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Price list items updated successfully",
	})
}

// ResolvePrice returns the effective price of a product for a client
func (h *PricingHandler) ResolvePrice(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	price, err := h.pricingService.ResolvePrice(clientID, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"client_id":  clientID,
			"product_id": productID,
			"price":      price,
		},
	})
}
