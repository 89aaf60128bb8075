package exchange_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
)

func serve(t *testing.T, status int, body string) *exchange.Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return exchange.NewClient(ts.URL, 5*time.Second)
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantSell string
		wantErr  error
	}{
		{
			name:     "Valid",
			status:   http.StatusOK,
			body:     `{"moneda":"USD","casa":"blue","compra":1405,"venta":1425.5,"fechaActualizacion":"2026-03-20T14:57:00.000Z"}`,
			wantSell: "1425.5",
		},
		{
			name:     "StringNumbers",
			status:   http.StatusOK,
			body:     `{"compra":"1405","venta":"1425"}`,
			wantSell: "1425",
		},
		{name: "MissingSell", status: http.StatusOK, body: `{"compra":1405}`, wantErr: exchange.ErrInvalidQuote},
		{name: "NullSell", status: http.StatusOK, body: `{"compra":1405,"venta":null}`, wantErr: exchange.ErrInvalidQuote},
		{name: "ZeroSell", status: http.StatusOK, body: `{"venta":0}`, wantErr: exchange.ErrInvalidQuote},
		{name: "NonNumeric", status: http.StatusOK, body: `{"venta":"n/a"}`, wantErr: exchange.ErrInvalidQuote},
		{name: "ServerError", status: http.StatusBadGateway, body: `{}`, wantErr: apperr.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serve(t, tt.status, tt.body).Fetch(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrUnavailable)

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.wantSell).Equal(got.Sell), "sell %s", got.Sell)
		})
	}
}

func TestClient_FetchParsesTimestamp(t *testing.T) {
	got, err := serve(t, http.StatusOK, `{"compra":1,"venta":2,"fechaActualizacion":"2026-03-20T14:57:00Z"}`).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 20, 14, 57, 0, 0, time.UTC), got.UpdatedAt.UTC())
	assert.Equal(t, "1", got.Buy.String())
}

type fakeUpdater struct {
	got decimal.Decimal
	err error
}

func (f *fakeUpdater) UpdateRate(_ context.Context, rate decimal.Decimal) (*fx.RateUpdate, error) {
	f.got = rate
	return &fx.RateUpdate{Rate: rate, Recalculated: 4}, f.err
}

func TestSyncer_Sync(t *testing.T) {
	t.Run("AppliesSellRate", func(t *testing.T) {
		updater := &fakeUpdater{}
		syncer := exchange.NewSyncer(serve(t, http.StatusOK, `{"compra":1405,"venta":1425}`), updater)

		res, err := syncer.Sync(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1425", updater.got.String())
		assert.Equal(t, 4, res.Update.Recalculated)
	})

	t.Run("RoundsSellRateToStoredPlaces", func(t *testing.T) {
		updater := &fakeUpdater{}
		syncer := exchange.NewSyncer(serve(t, http.StatusOK, `{"venta":1425.123456}`), updater)

		res, err := syncer.Sync(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1425.1235", updater.got.String())
		assert.Equal(t, "1425.1235", res.Quote.Sell.String())
		assert.NoError(t, fx.ValidateRate(updater.got))
	})

	t.Run("InvalidQuoteDoesNotUpdate", func(t *testing.T) {
		updater := &fakeUpdater{}
		syncer := exchange.NewSyncer(serve(t, http.StatusOK, `{"venta":null}`), updater)

		_, err := syncer.Sync(context.Background())
		assert.ErrorIs(t, err, exchange.ErrInvalidQuote)
		assert.True(t, updater.got.IsZero())
	})

	t.Run("CascadeErrorIsReturned", func(t *testing.T) {
		updater := &fakeUpdater{err: errors.Join(apperr.ErrPartialCascade)}
		syncer := exchange.NewSyncer(serve(t, http.StatusOK, `{"venta":1500}`), updater)

		res, err := syncer.Sync(context.Background())
		assert.ErrorIs(t, err, apperr.ErrPartialCascade)
		require.NotNil(t, res)
		assert.Equal(t, 4, res.Update.Recalculated)
	})
}
