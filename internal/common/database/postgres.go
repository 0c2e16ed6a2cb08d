// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fishlog-identify/internal/common/config"

	_ "github.com/lib/pq"
)

// ApplicationName tags every catalog session in pg_stat_activity.
const ApplicationName = "fishlog-identify"

// PostgresClient holds the pool used to scan the species catalog. Sessions
// are opened read-only: the service never writes to the catalog.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the catalog pool. sql.Open does not dial; the first
// query or Ping does.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", catalogDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	// One full scan per request; connections are short-lived and reused.
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// catalogDSN extends the configured DSN with session settings. lib/pq
// forwards unknown keys as runtime parameters.
func catalogDSN(cfg config.PostgresConfig) string {
	return fmt.Sprintf("%s application_name=%s default_transaction_read_only=on",
		cfg.GetDSN(), ApplicationName)
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}
