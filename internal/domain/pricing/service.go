// internal/domain/pricing/service.go
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/product"
)

// Service handles clients and price list business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new pricing service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateClientRequest represents client creation data
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PriceListID *uint  `json:"price_list_id"`
}

// PriceListItemRequest is one (product, price) entry
type PriceListItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

// CreatePriceListRequest represents price list creation data
type CreatePriceListRequest struct {
	Name  string                 `json:"name" binding:"required"`
	Items []PriceListItemRequest `json:"items"`
}

// CLIENTS

// CreateClient creates a new client
func (s *Service) CreateClient(req *CreateClientRequest) (*Client, error) {
	if req.PriceListID != nil {
		var count int64
		if err := s.db.Model(&PriceList{}).Where("id = ?", *req.PriceListID).Count(&count).Error; err != nil || count == 0 {
			return nil, fmt.Errorf("price list not found")
		}
	}

	client := &Client{
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		PriceListID: req.PriceListID,
		IsActive:    true,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// GetClient retrieves one client with its price list
func (s *Service) GetClient(clientID uint) (*Client, error) {
	var client Client
	if err := s.db.Preload("PriceList.Items").First(&client, clientID).Error; err != nil {
		return nil, fmt.Errorf("client not found")
	}
	return &client, nil
}

// GetClients retrieves all active clients
func (s *Service) GetClients() ([]Client, error) {
	var clients []Client
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve clients: %w", err)
	}
	return clients, nil
}

// UpdateClient updates a client
func (s *Service) UpdateClient(clientID uint, req *CreateClientRequest) (*Client, error) {
	var client Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		return nil, fmt.Errorf("client not found")
	}

	client.Name = req.Name
	client.ContactName = req.ContactName
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.PriceListID = req.PriceListID

	if err := s.db.Save(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return &client, nil
}

// PRICE LISTS

// CreatePriceList creates a price list with its items
func (s *Service) CreatePriceList(req *CreatePriceListRequest) (*PriceList, error) {
	list := &PriceList{
		Name:     req.Name,
		IsActive: true,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return fmt.Errorf("failed to create price list: %w", err)
		}
		for _, item := range req.Items {
			if item.Price.IsNegative() {
				return fmt.Errorf("price must not be negative")
			}
			row := PriceListItem{
				PriceListID: list.ID,
				ProductID:   item.ProductID,
				Price:       item.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save price list item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetPriceLists retrieves all price lists with their items
func (s *Service) GetPriceLists() ([]PriceList, error) {
	var lists []PriceList
	if err := s.db.Preload("Items").Order("name ASC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve price lists: %w", err)
	}
	return lists, nil
}

// SetPriceListItems replaces a price list's entries
func (s *Service) SetPriceListItems(listID uint, items []PriceListItemRequest) error {
	var list PriceList
	if err := s.db.First(&list, listID).Error; err != nil {
		return fmt.Errorf("price list not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_list_id = ?", listID).Delete(&PriceListItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear price list: %w", err)
		}
		for _, item := range items {
			if item.Price.IsNegative() {
				return fmt.Errorf("price must not be negative")
			}
			row := PriceListItem{
				PriceListID: listID,
				ProductID:   item.ProductID,
				Price:       item.Price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save price list item: %w", err)
			}
		}
		return nil
	})
}

// ResolvePrice returns the unit price a client pays for a product: the
// client's price list entry when one exists, otherwise the product's
// general price.
func (s *Service) ResolvePrice(clientID, productID uint) (decimal.Decimal, error) {
	var client Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("client not found")
	}

	if client.PriceListID != nil {
		var entry PriceListItem
		err := s.db.Where("price_list_id = ? AND product_id = ?", *client.PriceListID, productID).First(&entry).Error
		if err == nil {
			return entry.Price, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("failed to resolve price: %w", err)
		}
	}

	var prod product.Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("product not found")
	}
	return prod.Price, nil
}
