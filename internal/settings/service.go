package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetValues(ctx context.Context) (map[Key]decimal.Decimal, error)
	SetValues(ctx context.Context, values map[Key]decimal.Decimal) error
}

type Invalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache Invalidator
}

func NewService(repo Repository, cache Invalidator) *Service {
	return &Service{repo: repo, cache: cache}
}

// Snapshot reads every key, substituting defaults for the missing ones.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	values, err := s.repo.GetValues(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading configuration: %w", err)
	}

	snap := Defaults()

	if v, ok := values[KeyExchangeRate]; ok && v.IsPositive() {
		snap.ExchangeRate = v
	}

	if v, ok := values[KeyCommissionRate]; ok && !v.IsNegative() {
		snap.CommissionRate = v
	}

	if v, ok := values[KeyExternalBalance]; ok {
		snap.ExternalBalance = v
	}

	if v, ok := values[KeyExternalHold]; ok {
		snap.ExternalHold = v
	}

	return snap, nil
}

func (s *Service) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return snap.ExchangeRate, nil
}

// SetExchangeRate stores the rate only. Callers that need fixed costs re-derived go through fx.Service.
func (s *Service) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	if err := fx.ValidateRate(rate); err != nil {
		return err
	}

	return s.set(ctx, map[Key]decimal.Decimal{KeyExchangeRate: rate})
}

func (s *Service) SetCommissionRate(ctx context.Context, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: commission rate must not be negative", apperr.ErrValidation)
	}

	return s.set(ctx, map[Key]decimal.Decimal{KeyCommissionRate: rate})
}

func (s *Service) SetExternalBalance(ctx context.Context, b ExternalBalance) error {
	values := make(map[Key]decimal.Decimal, 2)

	if b.Net != nil {
		values[KeyExternalBalance] = *b.Net
	}

	if b.Hold != nil {
		values[KeyExternalHold] = *b.Hold
	}

	if len(values) == 0 {
		return nil
	}

	return s.set(ctx, values)
}

func (s *Service) set(ctx context.Context, values map[Key]decimal.Decimal) error {
	if err := s.repo.SetValues(ctx, values); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			slog.Warn("failed to invalidate summary cache", "error", err)
		}
	}

	return nil
}
