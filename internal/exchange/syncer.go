package exchange

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/fx"
)

type QuoteSource interface {
	Fetch(ctx context.Context) (*Quote, error)
}

type RateUpdater interface {
	UpdateRate(ctx context.Context, rate decimal.Decimal) (*fx.RateUpdate, error)
}

// Syncer applies the current sell rate through the same path as a manual rate change.
type Syncer struct {
	source QuoteSource
	rates  RateUpdater
}

func NewSyncer(source QuoteSource, rates RateUpdater) *Syncer {
	return &Syncer{source: source, rates: rates}
}

type SyncResult struct {
	Quote  *Quote
	Update *fx.RateUpdate
}

func (s *Syncer) Sync(ctx context.Context) (*SyncResult, error) {
	q, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	// Quotes come with arbitrary precision; the stored rate keeps fx.RatePlaces.
	q.Sell = q.Sell.Round(fx.RatePlaces)

	update, err := s.rates.UpdateRate(ctx, q.Sell)
	if err != nil {
		return &SyncResult{Quote: q, Update: update}, err
	}

	slog.Info("exchange rate synced", "buy", q.Buy.String(), "sell", q.Sell.String(), "recalculated", update.Recalculated)

	return &SyncResult{Quote: q, Update: update}, nil
}
