package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// SQLDB wraps the raw database/sql connection used for analytics queries.
// Aggregations run through database/sql directly rather than GORM so the
// grouping queries stay plain SQL.
type SQLDB struct {
	conn *sql.DB
}

// SQLConfig holds raw connection configuration
type SQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewSQLConnection creates the raw analytics connection
func NewSQLConnection(cfg SQLConfig) (*SQLDB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Analytics reads are bursty but low-volume; a small pool is enough
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)
	conn.SetConnMaxIdleTime(2 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Analytics database connection established")

	return &SQLDB{conn: conn}, nil
}

// Close closes the raw connection
func (db *SQLDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Ping checks if the connection is alive
func (db *SQLDB) Ping() error {
	return db.conn.Ping()
}

// Conn returns the underlying sql.DB connection
func (db *SQLDB) Conn() *sql.DB {
	return db.conn
}
