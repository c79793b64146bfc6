package database

import (
	"fmt"
	"log"

	models "trade-journal/database/models_pkg"
)

// InitSchema performs auto-migration for all journal tables and creates the
// composite indexes the tenant-scoped queries rely on.
func (d *Database) InitSchema() error {
	log.Println("🗄️  Running schema migration...")

	err := d.db.AutoMigrate(
		&models.Account{},
		&models.Trade{},
		&models.Playbook{},
		&models.Webhook{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Every trade listing filters on (account_id, user_id) and orders by the
	// trade date, so keep a covering index for that shape.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_trades_account_user_date
			ON trades (account_id, user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_user_symbol
			ON trades (user_id, symbol)`,
	}
	for _, stmt := range indexes {
		if err := d.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}

	log.Println("✅ Schema migration complete")
	return nil
}
