// Package jobs runs the external syncs on a cron schedule.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tablero/internal/balance"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
)

type RateSyncer interface {
	Sync(ctx context.Context) (*exchange.SyncResult, error)
}

type BalanceSyncer interface {
	Sync(ctx context.Context) (*balance.Result, error)
}

// Jobs holds the scheduled units of work. Each run gets its own timeout.
type Jobs struct {
	rates    RateSyncer
	balances BalanceSyncer
	timeout  time.Duration
	logger   *slog.Logger
}

func NewJobs(rates RateSyncer, balances BalanceSyncer, timeout time.Duration, logger *slog.Logger) *Jobs {
	return &Jobs{rates: rates, balances: balances, timeout: timeout, logger: logger}
}

func (j *Jobs) SyncExchangeRate() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	res, err := j.rates.Sync(ctx)
	if err != nil {
		j.logger.Error("scheduled exchange rate sync failed", "error", err)
		return
	}

	j.logger.Info("scheduled exchange rate sync done", "rate", res.Quote.Sell.String(), "recalculated", res.Update.Recalculated)
}

func (j *Jobs) SyncBalance() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	res, err := j.balances.Sync(ctx)
	if err != nil {
		j.logger.Error("scheduled balance sync failed", "error", err)
		return
	}

	j.logger.Info("scheduled balance sync done", "message", res.Message)
}
