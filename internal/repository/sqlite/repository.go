package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"greencalc/internal/domain/models"
)

const defaultListLimit = 200

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	area_m2 REAL NOT NULL,
	system_type TEXT NOT NULL,
	crop TEXT NOT NULL,
	country TEXT NOT NULL,
	currency_code TEXT NOT NULL,
	annual_yield_kg REAL NOT NULL,
	annual_profit REAL NOT NULL,
	solar_savings REAL NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteRepository persists calculation history into a local SQLite file.
type SQLiteRepository struct {
	db *sqlx.DB
}

// NewSQLiteRepository opens (or creates) the database file and ensures the
// history table exists.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Append inserts one calculation record.
func (r *SQLiteRepository) Append(ctx context.Context, record models.HistoryRecord) error {
	const query = `
INSERT INTO history (area_m2, system_type, crop, country, currency_code,
	annual_yield_kg, annual_profit, solar_savings, created_at)
VALUES (:area_m2, :system_type, :crop, :country, :currency_code,
	:annual_yield_kg, :annual_profit, :solar_savings, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// List returns the most recent records first.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	records := []models.HistoryRecord{}
	const query = `SELECT * FROM history ORDER BY id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}
	return records, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
