package cost

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cost
type Repository interface {
	CreateCost(ctx context.Context, c *Cost) error
	CreateCosts(ctx context.Context, costs []*Cost) error
	GetCost(ctx context.Context, id uuid.UUID) (*Cost, error)
	ListCosts(ctx context.Context, filter ListFilter) ([]*Cost, error)
	UpdateCost(ctx context.Context, c *Cost) error
	UpdateAmountUSD(ctx context.Context, id uuid.UUID, amountUSD decimal.Decimal) error
	DeleteCost(ctx context.Context, id uuid.UUID) error
}

// RateSource supplies the exchange rate in force.
type RateSource interface {
	ExchangeRate(ctx context.Context) (decimal.Decimal, error)
}

type Invalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo  Repository
	rates RateSource
	cache Invalidator
}

func NewService(repo Repository, rates RateSource, cache Invalidator) *Service {
	return &Service{repo: repo, rates: rates, cache: cache}
}

type CreateParams struct {
	Name      string
	AmountARS decimal.Decimal
	Type      Type
	Note      string
	Period    period.Period
}

// UpdateParams is a partial update: nil fields keep their stored value.
type UpdateParams struct {
	Name      *string
	AmountARS *decimal.Decimal
	Type      *Type
	Note      *string
	Period    *period.Period
}

type ListFilter struct {
	Period *period.Period
	Type   *Type
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Cost, error) {
	costs, err := s.CreateBatch(ctx, []CreateParams{params})
	if err != nil {
		return nil, err
	}

	return costs[0], nil
}

// CreateBatch converts every cost at the current rate and stores them together.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Cost, error) {
	if len(params) == 0 {
		return nil, nil
	}

	rate, err := s.rates.ExchangeRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading exchange rate: %w", err)
	}

	costs := make([]*Cost, len(params))

	for i, p := range params {
		c := &Cost{
			Name:      strings.TrimSpace(p.Name),
			AmountARS: p.AmountARS,
			Type:      p.Type,
			Note:      strings.TrimSpace(p.Note),
			Period:    p.Period,
		}

		if err := validate(c); err != nil {
			return nil, err
		}

		if c.AmountUSD, err = fx.ToUSD(c.AmountARS, rate); err != nil {
			return nil, err
		}

		costs[i] = c
	}

	if len(costs) == 1 {
		err = s.repo.CreateCost(ctx, costs[0])
	} else {
		err = s.repo.CreateCosts(ctx, costs)
	}

	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return costs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Cost, error) {
	return s.repo.GetCost(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Cost, error) {
	return s.repo.ListCosts(ctx, filter)
}

// ForPeriod returns the costs booked in p.
func (s *Service) ForPeriod(ctx context.Context, p period.Period) ([]*Cost, error) {
	return s.repo.ListCosts(ctx, ListFilter{Period: &p})
}

// Update applies params and re-derives AmountUSD at the current rate when AmountARS or Type changes,
// so a cost that becomes fixed carries the rate in force like every other fixed cost.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Cost, error) {
	c, err := s.repo.GetCost(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Type != nil {
		c.Type = *params.Type
	}

	if params.Note != nil {
		c.Note = strings.TrimSpace(*params.Note)
	}

	if params.Period != nil {
		c.Period = *params.Period
	}

	if params.AmountARS != nil {
		c.AmountARS = *params.AmountARS
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	if params.AmountARS != nil || params.Type != nil {
		rate, err := s.rates.ExchangeRate(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading exchange rate: %w", err)
		}

		if c.AmountUSD, err = fx.ToUSD(c.AmountARS, rate); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateCost(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCost(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

// RecalculateFixed re-derives AmountUSD of every fixed cost, in every period, at rate.
// Costs are updated one by one; failures are collected into a *CascadeError and the
// remaining costs are still processed.
func (s *Service) RecalculateFixed(ctx context.Context, rate decimal.Decimal) (int, error) {
	if err := fx.ValidateRate(rate); err != nil {
		return 0, err
	}

	fixed := TypeFixed

	costs, err := s.repo.ListCosts(ctx, ListFilter{Type: &fixed})
	if err != nil {
		return 0, fmt.Errorf("listing fixed costs: %w", err)
	}

	var (
		updated    int
		cascadeErr CascadeError
	)

	for _, c := range costs {
		usd, err := fx.ToUSD(c.AmountARS, rate)
		if err == nil {
			err = s.repo.UpdateAmountUSD(ctx, c.ID, usd)
		}

		if err != nil {
			slog.Error("failed to recalculate fixed cost", "cost_id", c.ID, "error", err)
			cascadeErr.Failed = append(cascadeErr.Failed, c.ID)
			cascadeErr.Errs = append(cascadeErr.Errs, err)

			continue
		}

		updated++
	}

	if len(cascadeErr.Failed) > 0 {
		return updated, &cascadeErr
	}

	return updated, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("failed to invalidate summary cache", "error", err)
	}
}

func validate(c *Cost) error {
	if c.Name == "" {
		return fmt.Errorf("%w: cost name is required", apperr.ErrValidation)
	}

	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown cost type %q", apperr.ErrValidation, c.Type)
	}

	if c.AmountARS.IsNegative() {
		return fmt.Errorf("%w: cost amount must not be negative", apperr.ErrValidation)
	}

	if c.Period.IsZero() {
		return fmt.Errorf("%w: cost period is required", apperr.ErrValidation)
	}

	return nil
}
