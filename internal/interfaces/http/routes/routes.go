// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rlaaron/trosset-app/internal/config"
	"github.com/rlaaron/trosset-app/internal/domain/user"
	"github.com/rlaaron/trosset-app/internal/interfaces/http/handlers"
	"github.com/rlaaron/trosset-app/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupInventoryRoutes(rg, db, cfg)
	setupProductRoutes(rg, db, cfg)
	setupPricingRoutes(rg, db, cfg)
	setupOrderRoutes(rg, db, cfg)
	setupProductionRoutes(rg, db, cfg)
	setupKioskRoutes(rg, db, redisClient, cfg)
}

// setupAuthRoutes sets up authentication and account routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/change-password", authHandler.ChangePassword)
			protected.GET("/validate", authHandler.ValidateToken)
		}
	}

	// Account management is admin only; the bakery has no self signup
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	users.Use(middleware.AdminMiddleware())
	{
		users.POST("", authHandler.Register)
		users.GET("", authHandler.GetUsers)
		users.PUT("/:id/status", authHandler.SetUserActive)
	}
}

// setupInventoryRoutes sets up inventory and stock routes
func setupInventoryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)

	inventory := rg.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware(cfg))
	inventory.Use(middleware.RequireRole(string(user.RoleAdmin), string(user.RoleBaker)))
	{
		inventory.GET("/items", inventoryHandler.GetItems)
		inventory.GET("/items/low-stock", inventoryHandler.GetLowStockItems)
		inventory.GET("/items/:id", inventoryHandler.GetItem)
		inventory.GET("/items/:id/movements", inventoryHandler.GetMovements)
		inventory.POST("/movements", inventoryHandler.ApplyMovement)

		// Item definitions are admin only
		admin := inventory.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/items", inventoryHandler.CreateItem)
			admin.PUT("/items/:id", inventoryHandler.UpdateItem)
			admin.DELETE("/items/:id", inventoryHandler.DeleteItem)
			admin.PUT("/items/:id/composition", inventoryHandler.SetComposition)
			admin.POST("/items/:id/recalculate", inventoryHandler.RecalculateStock)
		}
	}
}

// setupProductRoutes sets up product, recipe, variant and phase routes
func setupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/cost", productHandler.GetProductCost)
		products.GET("/variants/:variantId/cost", productHandler.GetVariantCost)

		// Catalog definitions are admin only
		admin := products.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.PUT("/:id/status", productHandler.SetProductActive)
			admin.PUT("/:id/recipe", productHandler.SetRecipe)
			admin.PUT("/:id/phases", productHandler.SetPhases)
			admin.POST("/:id/variants", productHandler.CreateVariant)
			admin.DELETE("/variants/:variantId", productHandler.DeleteVariant)
		}
	}
}

// setupPricingRoutes sets up client and price list routes
func setupPricingRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	pricingHandler := handlers.NewPricingHandler(db, cfg)

	clients := rg.Group("/clients")
	clients.Use(middleware.AuthMiddleware(cfg))
	{
		clients.GET("", pricingHandler.GetClients)
		clients.GET("/:id", pricingHandler.GetClient)
		clients.GET("/:id/price/:productId", pricingHandler.ResolvePrice)

		admin := clients.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", pricingHandler.CreateClient)
			admin.PUT("/:id", pricingHandler.UpdateClient)
		}
	}

	priceLists := rg.Group("/price-lists")
	priceLists.Use(middleware.AuthMiddleware(cfg))
	priceLists.Use(middleware.AdminMiddleware())
	{
		priceLists.GET("", pricingHandler.GetPriceLists)
		priceLists.POST("", pricingHandler.CreatePriceList)
		priceLists.PUT("/:id/items", pricingHandler.SetPriceListItems)
	}
}

// setupOrderRoutes sets up order routes
func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	orders.Use(middleware.RequireRole(string(user.RoleAdmin), string(user.RoleBaker)))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
		orders.GET("/:id/delivery-note", orderHandler.GetDeliveryNote)
	}
}

// setupProductionRoutes sets up production day and batch routes
func setupProductionRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productionHandler := handlers.NewProductionHandler(db, cfg)

	production := rg.Group("/production")
	production.Use(middleware.AuthMiddleware(cfg))
	production.Use(middleware.RequireRole(string(user.RoleAdmin), string(user.RoleBaker)))
	{
		days := production.Group("/days")
		{
			days.GET("", productionHandler.GetDays)
			days.POST("", productionHandler.CreateDay)
			days.GET("/:id", productionHandler.GetDay)
			days.PUT("/:id/orders", productionHandler.AssignOrders)
			days.POST("/:id/batches", productionHandler.GenerateBatches)
			days.GET("/:id/ingredients", productionHandler.GetIngredientReport)
			days.PUT("/:id/publish", productionHandler.PublishDay)
			days.PUT("/:id/close", productionHandler.CloseDay)
		}

		batches := production.Group("/batches")
		{
			batches.PUT("/:batchId/start", productionHandler.StartBatch)
			batches.PUT("/:batchId/complete", productionHandler.CompleteBatch)
			batches.PUT("/:batchId/fail-qa", productionHandler.FailBatchQA)
		}
	}
}

// setupKioskRoutes sets up the workshop tablet routes
func setupKioskRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	kioskHandler := handlers.NewKioskHandler(db, redisClient, cfg)

	kiosk := rg.Group("/kiosk")
	kiosk.Use(middleware.AuthMiddleware(cfg))
	{
		// Any authenticated role may read the board, including kiosk accounts
		kiosk.GET("/today", kioskHandler.GetTodayView)
	}
}
