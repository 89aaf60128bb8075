package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetValues(ctx context.Context) (map[settings.Key]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, numeric_value FROM configuration`)
	if err != nil {
		return nil, fmt.Errorf("listing configuration: %w", err)
	}
	defer rows.Close()

	values := make(map[settings.Key]decimal.Decimal)

	for rows.Next() {
		var (
			key   string
			value decimal.NullDecimal
		)

		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning configuration: %w", err)
		}

		if value.Valid {
			values[settings.Key(key)] = value.Decimal
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating configuration rows: %w", err)
	}

	return values, nil
}

// SetValues upserts all values in one database transaction.
func (s *Store) SetValues(ctx context.Context, values map[settings.Key]decimal.Decimal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO configuration (key, numeric_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET numeric_value = EXCLUDED.numeric_value, updated_at = NOW()
	`

	for key, value := range values {
		if _, err := dbTx.ExecContext(ctx, query, string(key), value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
