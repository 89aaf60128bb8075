package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type fakeAggregator struct {
	gotPeriod period.Period
	gotView   summary.View
	err       error
}

func (f *fakeAggregator) Periods(now time.Time) []period.Period {
	return period.Window(now)
}

func (f *fakeAggregator) Compute(_ context.Context, p period.Period, view summary.View) (*summary.Summary, error) {
	f.gotPeriod, f.gotView = p, view
	if f.err != nil {
		return nil, f.err
	}

	return &summary.Summary{Period: p, View: view, NetUSD: decimal.NewFromInt(820)}, nil
}

func newRouter(agg *fakeAggregator) http.Handler {
	h := NewHandler(agg)
	h.now = func() time.Time { return time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Group(h.Routes)

	return r
}

func TestHandler_Summary(t *testing.T) {
	t.Run("DefaultsToCurrentPeriodAndLiquidity", func(t *testing.T) {
		agg := &fakeAggregator{}
		rec := httptest.NewRecorder()
		newRouter(agg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, period.New(2026, time.March), agg.gotPeriod)
		assert.Equal(t, summary.ViewLiquidity, agg.gotView)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "820", got["net_usd"])
		assert.Equal(t, "03-2026", got["period"])
	})

	t.Run("PerformanceView", func(t *testing.T) {
		agg := &fakeAggregator{}
		rec := httptest.NewRecorder()
		newRouter(agg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary?period=01-2026&view=performance", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, period.New(2026, time.January), agg.gotPeriod)
		assert.Equal(t, summary.ViewPerformance, agg.gotView)
	})

	t.Run("BadInput", func(t *testing.T) {
		for _, q := range []string{"?view=cash", "?period=2026-01"} {
			rec := httptest.NewRecorder()
			newRouter(&fakeAggregator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary"+q, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})

	t.Run("ReadFailure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&fakeAggregator{err: errors.New("db down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_Periods(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeAggregator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/periods", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Current string   `json:"current"`
		Periods []string `json:"periods"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "03-2026", got.Current)
	require.Len(t, got.Periods, 14)
	assert.Equal(t, "05-2026", got.Periods[0])
}
