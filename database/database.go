// Package database provides storage access for the trade-journal service.
//
// This package includes:
//   - GORM/PostgreSQL connection management used by the row repositories
//   - A parallel database/sql connection used by the analytics repository
//     for raw aggregate queries
//   - The shared storage error taxonomy (StorageError, NotFoundError,
//     ValidationError)
//
// Every read and write against accounts, trades, playbooks and webhooks is
// scoped by user_id. Repositories never omit the tenant filter; a row that
// exists under another user is indistinguishable from a missing row.
//
// Data Models:
//
//	All data models (Account, Trade, Playbook, Webhook) are defined in the
//	models_pkg package to avoid circular import dependencies.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "trade-journal/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance for the row repositories.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes the database connection using GORM
func Connect(host, port, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Core data models - type aliases so callers can refer to database.Account etc.
// without importing models_pkg directly.
type Account = models.Account
type Trade = models.Trade
type Playbook = models.Playbook
type Webhook = models.Webhook
type DrawdownConfig = models.DrawdownConfig
