package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// PostgresClient represents a PostgreSQL database client
type PostgresClient struct {
	db *sqlx.DB
}

// DSN builds the connection string for config
func DSN(config models.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host,
		config.Port,
		config.Username,
		config.Password,
		config.Database,
		config.SSLMode,
	)
}

// NewPostgresClient creates a new PostgreSQL client over the pgx driver
func NewPostgresClient(config models.DatabaseConfig) (*PostgresClient, error) {
	driver := config.Driver
	if driver == "" {
		driver = "pgx"
	}

	db, err := sqlx.Open(driver, DSN(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if config.MaxConns > 0 {
		db.SetMaxOpenConns(config.MaxConns)
	}
	if config.IdleConns > 0 {
		db.SetMaxIdleConns(config.IdleConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresClient{db: db}, nil
}

// NewPostgresClientFromDB wraps an existing handle
func NewPostgresClientFromDB(db *sqlx.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

// GetDB returns the underlying sqlx handle
func (p *PostgresClient) GetDB() *sqlx.DB {
	return p.db
}

// Ping verifies the connection is alive
func (p *PostgresClient) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection pool
func (p *PostgresClient) Close() error {
	return p.db.Close()
}
