package remotesync

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/balance"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
)

type RateSyncer interface {
	Sync(ctx context.Context) (*exchange.SyncResult, error)
}

type BalanceSyncer interface {
	Sync(ctx context.Context) (*balance.Result, error)
}

type Handler struct {
	rates    RateSyncer
	balances BalanceSyncer
}

func NewHandler(rates RateSyncer, balances BalanceSyncer) *Handler {
	return &Handler{rates: rates, balances: balances}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/exchange-rate", h.exchangeRate)
	r.Post("/balance", h.balance)
}

type rateSyncResponse struct {
	Buy          decimal.Decimal `json:"buy"`
	Sell         decimal.Decimal `json:"sell"`
	QuotedAt     *time.Time      `json:"quoted_at,omitempty"`
	Rate         decimal.Decimal `json:"rate"`
	Recalculated int             `json:"recalculated"`
	Warning      string          `json:"warning,omitempty"`
}

func (h *Handler) exchangeRate(w http.ResponseWriter, r *http.Request) {
	res, err := h.rates.Sync(r.Context())

	partial := errors.Is(err, apperr.ErrPartialCascade) && res != nil && res.Update != nil
	if err != nil && !partial {
		respond.Error(w, r, err)
		return
	}

	resp := rateSyncResponse{
		Buy:          res.Quote.Buy,
		Sell:         res.Quote.Sell,
		Rate:         res.Update.Rate,
		Recalculated: res.Update.Recalculated,
	}

	if !res.Quote.UpdatedAt.IsZero() {
		resp.QuotedAt = &res.Quote.UpdatedAt
	}

	if err != nil {
		resp.Warning = err.Error()
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	res, err := h.balances.Sync(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, res)
}
