// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/rlaaron/trosset-app/internal/domain/inventory"
	"github.com/rlaaron/trosset-app/internal/domain/order"
	"github.com/rlaaron/trosset-app/internal/domain/pricing"
	"github.com/rlaaron/trosset-app/internal/domain/product"
	"github.com/rlaaron/trosset-app/internal/domain/production"
	"github.com/rlaaron/trosset-app/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain - Base tables
		&user.User{},

		// Inventory domain
		&inventory.InventoryItem{},
		&inventory.ItemComposition{},
		&inventory.StockMovement{},

		// Product domain
		&product.Product{},
		&product.ProductRecipe{},
		&product.ProductVariant{},
		&product.VariantIngredient{},
		&product.ProductionPhase{},
		&product.PhaseTrigger{},

		// Pricing domain
		&pricing.PriceList{},
		&pricing.PriceListItem{},
		&pricing.Client{},

		// Order domain - Dependent tables
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},

		// Production domain
		&production.ProductionDay{},
		&production.ProductionBatch{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_name ON inventory_items(name)",
		"CREATE INDEX IF NOT EXISTS idx_inventory_items_compound ON inventory_items(is_compound)",
		"CREATE INDEX IF NOT EXISTS idx_item_compositions_compound ON item_compositions(compound_item_id)",
		"CREATE INDEX IF NOT EXISTS idx_item_compositions_ingredient ON item_compositions(ingredient_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_item_created ON stock_movements(item_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_type ON stock_movements(movement_type)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements(reference)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_active ON products(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_product_recipes_product ON product_recipes(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_recipes_item ON product_recipes(item_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_product ON product_variants(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_variant_ingredients_variant ON variant_ingredients(variant_id)",
		"CREATE INDEX IF NOT EXISTS idx_production_phases_product ON production_phases(product_id, sequence)",
		"CREATE INDEX IF NOT EXISTS idx_phase_triggers_phase ON phase_triggers(phase_id)",

		// Pricing indexes
		"CREATE INDEX IF NOT EXISTS idx_clients_price_list ON clients(price_list_id)",
		"CREATE INDEX IF NOT EXISTS idx_clients_active ON clients(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_price_list_items_list ON price_list_items(price_list_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_client_status ON orders(client_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_delivery ON orders(status, delivery_date)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_production_day ON orders(production_day_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_histories_order ON order_status_histories(order_id, created_at DESC)",

		// Production indexes
		"CREATE INDEX IF NOT EXISTS idx_production_days_date ON production_days(production_date)",
		"CREATE INDEX IF NOT EXISTS idx_production_days_status ON production_days(status)",
		"CREATE INDEX IF NOT EXISTS idx_production_batches_day ON production_batches(production_day_id)",
		"CREATE INDEX IF NOT EXISTS idx_production_batches_day_status ON production_batches(production_day_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_production_batches_product ON production_batches(product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	// Create default admin user
	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Create kiosk display account for the workshop screen
	if err := m.seedKioskUser(); err != nil {
		return fmt.Errorf("failed to seed kiosk user: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@trosset.local").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Email:     "admin@trosset.local",
			Password:  string(hashedPassword),
			FirstName: "Admin",
			LastName:  "Trosset",
			Role:      user.RoleAdmin,
			IsActive:  true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin@trosset.local (password: admin123)")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}

func (m *Migration) seedKioskUser() error {
	log.Println("🖥️ Seeding kiosk user...")

	var existing user.User
	result := m.db.Where("email = ?", "kiosk@trosset.local").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("kiosk123"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		kioskUser := user.User{
			Email:     "kiosk@trosset.local",
			Password:  string(hashedPassword),
			FirstName: "Taller",
			LastName:  "Pantalla",
			Role:      user.RoleKiosk,
			IsActive:  true,
		}

		if err := m.db.Create(&kioskUser).Error; err != nil {
			return fmt.Errorf("failed to create kiosk user: %w", err)
		}

		log.Println("✅ Created kiosk user: kiosk@trosset.local (password: kiosk123)")
	} else {
		log.Println("⏭️ Kiosk user already exists")
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Define tables in reverse dependency order
	tables := []string{
		"production_batches",
		"production_days",
		"order_status_histories",
		"order_items",
		"orders",
		"clients",
		"price_list_items",
		"price_lists",
		"phase_triggers",
		"production_phases",
		"variant_ingredients",
		"product_variants",
		"product_recipes",
		"products",
		"stock_movements",
		"item_compositions",
		"inventory_items",
		"users",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	// Get list of tables
	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
