// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/order"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/product"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/store"
	"github.com/Ju4nD4v1d/lulo-market-web-sub001/internal/domain/user"
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

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&store.Store{},
		&store.Lead{},

		&product.Product{},

		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
	}

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
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Store indexes
		"CREATE INDEX IF NOT EXISTS idx_stores_slug ON stores(slug)",
		"CREATE INDEX IF NOT EXISTS idx_stores_active ON stores(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_stores_city ON stores(city)",

		// Lead indexes
		"CREATE INDEX IF NOT EXISTS idx_potential_leads_status ON potential_leads(status)",
		"CREATE INDEX IF NOT EXISTS idx_potential_leads_email ON potential_leads(email)",
		"CREATE INDEX IF NOT EXISTS idx_potential_leads_created_at ON potential_leads(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_store_available ON products(store_id, is_available)",
		"CREATE INDEX IF NOT EXISTS idx_products_store_category ON products(store_id, category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_store_status ON orders(store_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_status ON order_status_history(status)",
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

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedDemoStore(); err != nil {
		return fmt.Errorf("failed to seed demo store: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@lulomarket.com").First(&existing)
	if result.Error != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin2024!"), 10)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		adminUser := user.User{
			Email:         "admin@lulomarket.com",
			Password:      string(hashedPassword),
			FirstName:     "Admin",
			LastName:      "User",
			Language:      "es",
			IsActive:      true,
			IsAdmin:       true,
			EmailVerified: true,
		}

		if err := m.db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("✅ Created admin user: admin@lulomarket.com")
	} else {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
	}

	return nil
}

// seedDemoStore creates a demo store with a bilingual menu for development
func (m *Migration) seedDemoStore() error {
	log.Println("🏪 Seeding demo store...")

	var existing store.Store
	result := m.db.Where("slug = ?", "taqueria-el-sol").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Demo store already exists with ID: %d", existing.ID)
		return nil
	}

	demoStore := store.Store{
		Name:          "Taquería El Sol",
		Slug:          "taqueria-el-sol",
		Description:   "Authentic Mexican street food made fresh daily",
		DescriptionES: "Auténtica comida callejera mexicana hecha fresca cada día",
		Email:         "hola@taqueriaelsol.ca",
		Phone:         "+16045550123",
		AddressLine1:  "1234 Commercial Drive",
		City:          "Vancouver",
		Province:      "BC",
		PostalCode:    "V5L 3X1",
		IsActive:      true,
	}

	if err := m.db.Create(&demoStore).Error; err != nil {
		return fmt.Errorf("failed to create demo store: %w", err)
	}

	menu := []product.Product{
		{
			StoreID:     demoStore.ID,
			Name:        "Tacos al Pastor (3)",
			NameES:      "Tacos al Pastor (3)",
			Description: "Marinated pork tacos with pineapple, onion and cilantro",
			PriceCents:  1599,
			Category:    "tacos",
			IsAvailable: true,
		},
		{
			StoreID:     demoStore.ID,
			Name:        "Chicken Quesadilla",
			NameES:      "Quesadilla de Pollo",
			Description: "Grilled flour tortilla with chicken and Oaxaca cheese",
			PriceCents:  1299,
			Category:    "quesadillas",
			IsAvailable: true,
		},
		{
			StoreID:     demoStore.ID,
			Name:        "Horchata",
			NameES:      "Horchata",
			Description: "Traditional rice and cinnamon drink",
			PriceCents:  499,
			Category:    "drinks",
			IsAvailable: true,
		},
	}

	for _, p := range menu {
		if err := m.db.Create(&p).Error; err != nil {
			log.Printf("⚠️ Failed to create demo product %s: %v", p.Name, err)
		}
	}

	log.Printf("✅ Created demo store: %s with %d products", demoStore.Name, len(menu))
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_status_history",
		"order_items",
		"orders",
		"products",
		"potential_leads",
		"stores",
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
