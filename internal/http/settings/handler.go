package settings

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

type Handler struct {
	svc *settings.Service
	fx  *fx.Service
}

func NewHandler(svc *settings.Service, fxSvc *fx.Service) *Handler {
	return &Handler{svc: svc, fx: fxSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/exchange-rate", h.setExchangeRate)
	r.Put("/commission-rate", h.setCommissionRate)
	r.Put("/external-balance", h.setExternalBalance)
}

type settingsResponse struct {
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	CommissionRate  decimal.Decimal `json:"commission_rate_per_client"`
	ExternalBalance decimal.Decimal `json:"external_balance_net"`
	ExternalHold    decimal.Decimal `json:"external_hold_amount"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, settingsResponse{
		ExchangeRate:    snap.ExchangeRate,
		CommissionRate:  snap.CommissionRate,
		ExternalBalance: snap.ExternalBalance,
		ExternalHold:    snap.ExternalHold,
	})
}

type rateRequest struct {
	Rate *decimal.Decimal `json:"rate" validate:"required"`
}

type rateUpdateResponse struct {
	Rate         decimal.Decimal `json:"rate"`
	Recalculated int             `json:"recalculated"`
	Warning      string          `json:"warning,omitempty"`
}

// setExchangeRate answers 200 with a warning when the rate was saved but some fixed costs
// could not be re-derived.
func (h *Handler) setExchangeRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.fx.UpdateRate(r.Context(), *req.Rate)
	if err != nil && !(errors.Is(err, apperr.ErrPartialCascade) && res != nil) {
		respond.Error(w, r, err)
		return
	}

	resp := rateUpdateResponse{Rate: res.Rate, Recalculated: res.Recalculated}
	if err != nil {
		resp.Warning = err.Error()
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) setCommissionRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.SetCommissionRate(r.Context(), *req.Rate); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type externalBalanceRequest struct {
	Net  *decimal.Decimal `json:"balance_net"`
	Hold *decimal.Decimal `json:"hold_amount"`
}

func (h *Handler) setExternalBalance(w http.ResponseWriter, r *http.Request) {
	var req externalBalanceRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.SetExternalBalance(r.Context(), settings.ExternalBalance{Net: req.Net, Hold: req.Hold}); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
