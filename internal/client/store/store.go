package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/tablero/internal/client"
)

const foreignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `id, name, status, monthly_fee, commission, payment_day, created_at, updated_at`

func scanClient(s scanner) (*client.Client, error) {
	var (
		c          client.Client
		status     string
		paymentDay sql.NullInt32
	)

	if err := s.Scan(
		&c.ID, &c.Name, &status, &c.MonthlyFee, &c.Commission, &paymentDay, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = client.Status(status)

	if paymentDay.Valid {
		c.PaymentDay = new(int(paymentDay.Int32))
	}

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (name, status, monthly_fee, commission, payment_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name,
		c.Status,
		c.MonthlyFee,
		c.Commission,
		c.PaymentDay,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients`

	var args []any

	if filter.Status != nil {
		query += " WHERE status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = $1, status = $2, monthly_fee = $3, commission = $4, payment_day = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name,
		c.Status,
		c.MonthlyFee,
		c.Commission,
		c.PaymentDay,
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return client.ErrNotFound
		}

		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return client.ErrInUse
		}

		return fmt.Errorf("deleting client: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if n == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) CountCommissionable(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM clients WHERE status = $1 AND commission`

	var n int
	if err := s.db.QueryRowContext(ctx, query, client.StatusActive).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting commission clients: %w", err)
	}

	return n, nil
}
