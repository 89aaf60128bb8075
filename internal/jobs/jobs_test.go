package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/balance"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/jobs"
)

type fakeRates struct {
	calls    int
	err      error
	deadline bool
}

func (f *fakeRates) Sync(ctx context.Context) (*exchange.SyncResult, error) {
	f.calls++
	_, f.deadline = ctx.Deadline()

	if f.err != nil {
		return nil, f.err
	}

	rate := decimal.NewFromInt(1425)

	return &exchange.SyncResult{
		Quote:  &exchange.Quote{Sell: rate},
		Update: &fx.RateUpdate{Rate: rate, Recalculated: 2},
	}, nil
}

type fakeBalances struct {
	calls int
}

func (f *fakeBalances) Sync(context.Context) (*balance.Result, error) {
	f.calls++
	return &balance.Result{Success: true, Message: "ok"}, nil
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestJobs_SyncExchangeRate(t *testing.T) {
	var buf bytes.Buffer

	rates := &fakeRates{}
	j := jobs.NewJobs(rates, &fakeBalances{}, time.Second, newLogger(&buf))

	j.SyncExchangeRate()
	assert.Equal(t, 1, rates.calls)
	assert.True(t, rates.deadline)
	assert.Contains(t, buf.String(), "rate=1425")

	rates.err = errors.New("dolarapi down")
	j.SyncExchangeRate()
	assert.Contains(t, buf.String(), "dolarapi down")
}

func TestJobs_SyncBalance(t *testing.T) {
	var buf bytes.Buffer

	balances := &fakeBalances{}
	jobs.NewJobs(&fakeRates{}, balances, time.Second, newLogger(&buf)).SyncBalance()

	assert.Equal(t, 1, balances.calls)
	assert.Contains(t, buf.String(), "scheduled balance sync done")
}

func TestScheduler_Start(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf)
	j := jobs.NewJobs(&fakeRates{}, &fakeBalances{}, time.Second, logger)

	t.Run("RegistersEnabledJobs", func(t *testing.T) {
		s := jobs.NewScheduler(j, logger, jobs.Schedules{ExchangeRate: "0 */6 * * *"})
		require.NoError(t, s.Start())
		defer s.Stop()

		assert.Equal(t, 1, s.Len())
	})

	t.Run("RejectsInvalidSpec", func(t *testing.T) {
		s := jobs.NewScheduler(j, logger, jobs.Schedules{ExchangeRate: "every six hours"})
		assert.Error(t, s.Start())
	})
}
