package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectCostColumns = `id, name, amount_ars, amount_usd, type, note, period, created_at, updated_at`

func scanCost(s scanner) (*cost.Cost, error) {
	var (
		c       cost.Cost
		typeStr string
		note    sql.NullString
		start   time.Time
	)

	if err := s.Scan(
		&c.ID, &c.Name, &c.AmountARS, &c.AmountUSD, &typeStr, &note, &start, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = cost.Type(typeStr)
	c.Note = note.String
	c.Period = period.Of(start)

	return &c, nil
}

func insertCost(ctx context.Context, db execer, c *cost.Cost) error {
	query := `
		INSERT INTO costs (name, amount_ars, amount_usd, type, note, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := db.QueryRowContext(ctx, query,
		c.Name,
		c.AmountARS,
		c.AmountUSD,
		c.Type,
		c.Note,
		c.Period.Start(time.UTC),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating cost: %w", err)
	}

	return nil
}

func (s *Store) CreateCost(ctx context.Context, c *cost.Cost) error {
	return insertCost(ctx, s.db, c)
}

// CreateCosts inserts all costs or none.
func (s *Store) CreateCosts(ctx context.Context, costs []*cost.Cost) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, c := range costs {
		if err := insertCost(ctx, dbTx, c); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetCost(ctx context.Context, id uuid.UUID) (*cost.Cost, error) {
	query := `SELECT ` + selectCostColumns + ` FROM costs WHERE id = $1`

	c, err := scanCost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cost.ErrNotFound
		}

		return nil, fmt.Errorf("getting cost: %w", err)
	}

	return c, nil
}

func (s *Store) ListCosts(ctx context.Context, filter cost.ListFilter) ([]*cost.Cost, error) {
	query := `SELECT ` + selectCostColumns + ` FROM costs WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Period != nil {
		query += fmt.Sprintf(" AND period = $%d", argIdx)

		args = append(args, filter.Period.Start(time.UTC))
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
	}

	query += " ORDER BY period DESC, type ASC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing costs: %w", err)
	}
	defer rows.Close()

	var costs []*cost.Cost

	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cost: %w", err)
		}

		costs = append(costs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost rows: %w", err)
	}

	return costs, nil
}

func (s *Store) UpdateCost(ctx context.Context, c *cost.Cost) error {
	query := `
		UPDATE costs
		SET name = $1, amount_ars = $2, amount_usd = $3, type = $4, note = $5, period = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name,
		c.AmountARS,
		c.AmountUSD,
		c.Type,
		c.Note,
		c.Period.Start(time.UTC),
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cost.ErrNotFound
		}

		return fmt.Errorf("updating cost: %w", err)
	}

	return nil
}

func (s *Store) UpdateAmountUSD(ctx context.Context, id uuid.UUID, amountUSD decimal.Decimal) error {
	query := `UPDATE costs SET amount_usd = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, amountUSD, id); err != nil {
		return fmt.Errorf("updating cost amount: %w", err)
	}

	return nil
}

func (s *Store) DeleteCost(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM costs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting cost: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cost: %w", err)
	}

	if n == 0 {
		return cost.ErrNotFound
	}

	return nil
}
