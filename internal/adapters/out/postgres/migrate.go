package postgres

import (
	"fulfillment/internal/adapters/out/postgres/agentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/storerepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Models lists every table of the driver in dependency-free order.
func Models() []any {
	return []any{
		&storerepo.StoreDTO{},
		&agentrepo.AgentDTO{},
		&agentrepo.LocationSampleDTO{},
		&orderrepo.OrderDTO{},
		&trackingrepo.EntryDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
