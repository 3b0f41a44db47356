// Package database provides an optional Postgres cache for fetched price
// history, keyed by symbol and timestamp. Computed statistical results are
// never persisted; only raw provider input passes through here.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/tsquant/engine/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection and bootstraps the schema
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS price_history (
			symbol TEXT NOT NULL,
			ts TIMESTAMP NOT NULL,
			close_price DOUBLE PRECISION NOT NULL,
			fetched_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (symbol, ts)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating price_history table: %w", err)
	}
	return nil
}

// SavePrices upserts fetched price points for a symbol
func (db *DB) SavePrices(ctx context.Context, symbol string, points []models.PricePoint) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO price_history (symbol, ts, close_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol, ts) DO UPDATE SET close_price = EXCLUDED.close_price
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, symbol, p.Timestamp, p.Close); err != nil {
			return fmt.Errorf("upserting price point: %w", err)
		}
	}

	return tx.Commit()
}

// LoadPrices returns cached price points for a symbol within [start, end],
// ordered oldest first. An empty result means a cache miss, not an error.
func (db *DB) LoadPrices(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT ts, close_price FROM price_history
		WHERE symbol = $1 AND ts >= $2 AND ts <= $3
		ORDER BY ts ASC
	`, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Timestamp, &p.Close); err != nil {
			return nil, fmt.Errorf("scanning price row: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
