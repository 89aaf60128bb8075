// Package commission prices the per-client commission owed on active commissionable clients.
package commission

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type ClientCounter interface {
	CountCommissionable(ctx context.Context) (int, error)
}

type Calculator struct {
	clients ClientCounter
}

func NewCalculator(clients ClientCounter) *Calculator {
	return &Calculator{clients: clients}
}

type Result struct {
	Clients int
	Rate    decimal.Decimal
	Total   decimal.Decimal
}

// Cost counts the active clients flagged for commission and prices them at rate (USD per client).
func (c *Calculator) Cost(ctx context.Context, rate decimal.Decimal) (*Result, error) {
	n, err := c.clients.CountCommissionable(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting commission clients: %w", err)
	}

	return &Result{Clients: n, Rate: rate, Total: Total(n, rate)}, nil
}

func Total(clients int, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(clients)).Mul(rate)
}
