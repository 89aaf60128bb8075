package fx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

type RateStore interface {
	SetExchangeRate(ctx context.Context, rate decimal.Decimal) error
}

// FixedCostRecalculator re-derives the USD amount of every fixed cost at a new rate.
type FixedCostRecalculator interface {
	RecalculateFixed(ctx context.Context, rate decimal.Decimal) (int, error)
}

type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service applies exchange-rate changes and the cost cascade they imply.
type Service struct {
	rates RateStore
	costs FixedCostRecalculator
	cache Invalidator
}

func NewService(rates RateStore, costs FixedCostRecalculator, cache Invalidator) *Service {
	return &Service{rates: rates, costs: costs, cache: cache}
}

// RateUpdate reports the outcome of a rate change.
type RateUpdate struct {
	Rate         decimal.Decimal
	Recalculated int
}

// UpdateRate persists rate and recalculates every fixed cost before returning.
// A cascade that fails halfway is not rolled back; the error says which costs are stale.
func (s *Service) UpdateRate(ctx context.Context, rate decimal.Decimal) (*RateUpdate, error) {
	if err := ValidateRate(rate); err != nil {
		return nil, err
	}

	if err := s.rates.SetExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("saving exchange rate: %w", err)
	}

	n, cascadeErr := s.costs.RecalculateFixed(ctx, rate)
	if cascadeErr != nil && !errors.Is(cascadeErr, apperr.ErrPartialCascade) {
		// The rate is already saved, so any cascade failure leaves fixed costs stale.
		cascadeErr = fmt.Errorf("%w: %w", apperr.ErrPartialCascade, cascadeErr)
	}

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			slog.Warn("failed to invalidate summary cache", "error", err)
		}
	}

	if cascadeErr != nil {
		slog.Error("exchange rate cascade incomplete", "rate", rate.String(), "recalculated", n, "error", cascadeErr)
		return &RateUpdate{Rate: rate, Recalculated: n}, cascadeErr
	}

	slog.Info("exchange rate updated", "rate", rate.String(), "recalculated", n)

	return &RateUpdate{Rate: rate, Recalculated: n}, nil
}
