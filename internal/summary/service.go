package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/tablero/internal/client"
	"github.com/MrJamesThe3rd/tablero/internal/commission"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

type SettingsReader interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

type IncomeLister interface {
	List(ctx context.Context, filter income.ListFilter) ([]*income.Income, error)
}

type CostLister interface {
	ForPeriod(ctx context.Context, p period.Period) ([]*cost.Cost, error)
}

type ClientLister interface {
	Active(ctx context.Context) ([]*client.Client, error)
}

type CommissionCalculator interface {
	Cost(ctx context.Context, rate decimal.Decimal) (*commission.Result, error)
}

type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
}

// Service aggregates a period from source records on every call; Cache only memoises the result.
type Service struct {
	settings   SettingsReader
	income     IncomeLister
	costs      CostLister
	clients    ClientLister
	commission CommissionCalculator
	cache      Cache
}

func NewService(
	settings SettingsReader,
	income IncomeLister,
	costs CostLister,
	clients ClientLister,
	commission CommissionCalculator,
	cache Cache,
) *Service {
	return &Service{
		settings:   settings,
		income:     income,
		costs:      costs,
		clients:    clients,
		commission: commission,
		cache:      cache,
	}
}

// Periods lists the periods a summary can be requested for, newest first.
func (s *Service) Periods(now time.Time) []period.Period {
	return period.Window(now)
}

// Compute returns the summary of p under view, served from the cache when it is current.
func (s *Service) Compute(ctx context.Context, p period.Period, view View) (*Summary, error) {
	if s.cache == nil {
		return s.computeSummary(ctx, p, view)
	}

	key, err := s.cache.BuildKey(ctx, "summary", p.String(), string(view))
	if err != nil {
		slog.Warn("summary cache unavailable", "error", err)
		return s.computeSummary(ctx, p, view)
	}

	var (
		out     Summary
		loadErr error
	)

	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		sum, err := s.computeSummary(ctx, p, view)
		loadErr = err

		return sum, err
	})
	if loadErr != nil {
		return nil, loadErr
	}

	if err != nil {
		slog.Warn("summary cache unavailable", "error", err)
		return s.computeSummary(ctx, p, view)
	}

	return &out, nil
}

func (s *Service) computeSummary(ctx context.Context, p period.Period, view View) (*Summary, error) {
	d, err := s.Detail(ctx, p, view)
	if err != nil {
		return nil, err
	}

	return d.Summary, nil
}

// Detail computes the summary of p without the cache and returns the records behind it.
func (s *Service) Detail(ctx context.Context, p period.Period, view View) (*Detail, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	filter := income.ListFilter{Period: &p}
	if view == ViewPerformance {
		filter = income.ListFilter{MonthApplied: &p}
	}

	var (
		incomes []*income.Income
		costs   []*cost.Cost
		active  []*client.Client
		comm    *commission.Result
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if incomes, err = s.income.List(gctx, filter); err != nil {
			return fmt.Errorf("listing income: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		if costs, err = s.costs.ForPeriod(gctx, p); err != nil {
			return fmt.Errorf("listing costs: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		if active, err = s.clients.Active(gctx); err != nil {
			return fmt.Errorf("listing active clients: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		if comm, err = s.commission.Cost(gctx, snap.CommissionRate); err != nil {
			return fmt.Errorf("computing commission: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := aggregate(p, view, snap, incomes, costs, active, comm)

	return &Detail{Summary: sum, Income: incomes, Costs: costs}, nil
}

func aggregate(
	p period.Period,
	view View,
	snap settings.Snapshot,
	incomes []*income.Income,
	costs []*cost.Cost,
	active []*client.Client,
	comm *commission.Result,
) *Summary {
	sum := &Summary{
		Period:            p,
		View:              view,
		IncomeCount:       len(incomes),
		CommissionCost:    comm.Total,
		CommissionClients: comm.Clients,
		ExternalBalance:   snap.ExternalBalance,
		ExternalHold:      snap.ExternalHold,
		ActiveClients:     len(active),
		ExchangeRate:      snap.ExchangeRate,
	}

	for _, inc := range incomes {
		sum.TotalUSD = sum.TotalUSD.Add(inc.AmountUSD)
		sum.TotalARS = sum.TotalARS.Add(inc.AmountARS)
	}

	for _, c := range costs {
		switch c.Type {
		case cost.TypeFixed:
			sum.FixedUSD = sum.FixedUSD.Add(c.AmountUSD)
		case cost.TypeVariable:
			sum.VariableUSD = sum.VariableUSD.Add(c.AmountUSD)
		}
	}

	for _, c := range active {
		sum.ProjectedRevenue = sum.ProjectedRevenue.Add(c.MonthlyFee)
	}

	sum.CostsUSD = sum.FixedUSD.Add(sum.VariableUSD)
	sum.TotalCosts = sum.CostsUSD.Add(sum.CommissionCost)
	sum.NetHonoraria = sum.TotalUSD.Sub(sum.TotalCosts)
	sum.NetUSD = sum.NetHonoraria.Add(sum.ExternalBalance)
	sum.Ratio = ratio(sum.TotalUSD, sum.TotalCosts)
	sum.Margin = margin(sum.NetUSD, sum.TotalUSD)

	return sum
}
