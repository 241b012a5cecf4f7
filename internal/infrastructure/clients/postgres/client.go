package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/healthfair/backend/pkg/config"
	"github.com/healthfair/backend/pkg/retry"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Client owns the PostgreSQL connection pool and the goqu database built on it
type Client struct {
	db   *sql.DB
	goqu *goqu.Database
}

// NewClient opens the pool and waits for PostgreSQL with exponential backoff.
// Health fair sites often bring the database up alongside the API.
func NewClient(ctx context.Context, cfg *config.DatabaseConfig) (*Client, error) {
	db, err := sql.Open("postgres", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	err = retry.DoWithLog(ctx, retry.DefaultConfig(), "postgres ping",
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return db.PingContext(pingCtx)
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).
				Int("attempt", attempt).
				Dur("retry_in", nextDelay).
				Str("host", cfg.Host).
				Msg("PostgreSQL not ready")
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("connected to PostgreSQL")
	return NewClientFromDB(db), nil
}

// NewClientFromDB wraps an already opened handle, e.g. a sqlmock connection
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db, goqu: goqu.New("postgres", db)}
}

// DB returns the underlying connection pool
func (c *Client) DB() *sql.DB {
	return c.db
}

// Goqu returns the postgres-dialect query builder bound to the pool
func (c *Client) Goqu() *goqu.Database {
	return c.goqu
}

// Close closes the connection pool
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping satisfies the health check
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
