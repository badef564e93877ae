package models

import "github.com/masaladesk/restro_backend/config"

// MigrateTable creates/updates all tables. Called once on startup.
func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Category{},
		&MenuItem{},
		&Order{},
		&OrderItem{},
		&InventoryItem{},
		&StockLog{},
	)
}
