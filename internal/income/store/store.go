package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectIncomeColumns = `
	i.id, i.client_id, c.name, i.amount_usd, i.amount_ars, i.collected_on, i.period, i.month_applied,
	i.note, i.created_at
`

func scanIncome(s scanner) (*income.Income, error) {
	var (
		inc          income.Income
		clientName   sql.NullString
		note         sql.NullString
		periodStart  time.Time
		appliedStart time.Time
	)

	if err := s.Scan(
		&inc.ID, &inc.ClientID, &clientName, &inc.AmountUSD, &inc.AmountARS, &inc.CollectedOn,
		&periodStart, &appliedStart, &note, &inc.CreatedAt,
	); err != nil {
		return nil, err
	}

	inc.ClientName = clientName.String
	inc.Note = note.String
	inc.Period = period.Of(periodStart)
	inc.MonthApplied = period.Of(appliedStart)

	return &inc, nil
}

// CreateIncome inserts inc unless the client already has an income for the same service month.
// The unique constraint on (client_id, month_applied) decides, so concurrent callers cannot both win.
func (s *Store) CreateIncome(ctx context.Context, inc *income.Income) error {
	query := `
		INSERT INTO income (client_id, amount_usd, amount_ars, collected_on, period, month_applied, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (client_id, month_applied) DO NOTHING
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inc.ClientID,
		inc.AmountUSD,
		inc.AmountARS,
		inc.CollectedOn,
		inc.Period.Start(time.UTC),
		inc.MonthApplied.Start(time.UTC),
		inc.Note,
	).Scan(&inc.ID, &inc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return income.ErrDuplicate
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return income.ErrDuplicate
		}

		return fmt.Errorf("creating income: %w", err)
	}

	return nil
}

func (s *Store) FindByClientMonth(ctx context.Context, clientID uuid.UUID, monthApplied period.Period) (*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM income i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.client_id = $1 AND i.month_applied = $2`

	inc, err := scanIncome(s.db.QueryRowContext(ctx, query, clientID, monthApplied.Start(time.UTC)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, income.ErrNotFound
		}

		return nil, fmt.Errorf("finding income: %w", err)
	}

	return inc, nil
}

func (s *Store) ListIncome(ctx context.Context, filter income.ListFilter) ([]*income.Income, error) {
	query := `SELECT ` + selectIncomeColumns + `
		FROM income i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Period != nil {
		query += fmt.Sprintf(" AND i.period = $%d", argIdx)

		args = append(args, filter.Period.Start(time.UTC))
		argIdx++
	}

	if filter.MonthApplied != nil {
		query += fmt.Sprintf(" AND i.month_applied = $%d", argIdx)

		args = append(args, filter.MonthApplied.Start(time.UTC))
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND i.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
	}

	query += " ORDER BY i.collected_on ASC, c.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing income: %w", err)
	}
	defer rows.Close()

	var incomes []*income.Income

	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income rows: %w", err)
	}

	return incomes, nil
}
