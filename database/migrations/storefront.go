package migrations

import (
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/pkg/migration"
	"github.com/shringarlabs/shringar/pkg/queue"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000002_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260301000003_create_settings_table", &CreateSettingsTable{})
	migration.Register("20260301000004_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders --------
// Item snapshots are serialized into the row, so there is no separate
// order_items table to create or drop.

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0004: settings --------

type CreateSettingsTable struct{}

func (m *CreateSettingsTable) Up(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Settings{}); err != nil {
		return err
	}
	// Seed the single row so pricing has something to read on first boot.
	var n int64
	if err := db.Model(&models.Settings{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		defaults := models.DefaultSettings()
		return db.Create(&defaults).Error
	}
	return nil
}

func (m *CreateSettingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("settings")
}

// -------- 0005: failed jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
