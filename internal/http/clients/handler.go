package clients

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/client"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createClientRequest struct {
	Name       string           `json:"name" validate:"required"`
	Status     client.Status    `json:"status" validate:"omitempty,oneof=active paused inactive prospect"`
	MonthlyFee *decimal.Decimal `json:"monthly_fee" validate:"required"`
	Commission bool             `json:"commission"`
	PaymentDay *int             `json:"payment_day" validate:"omitempty,min=1,max=31"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		Name:       req.Name,
		Status:     req.Status,
		MonthlyFee: *req.MonthlyFee,
		Commission: req.Commission,
		PaymentDay: req.PaymentDay,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := client.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := client.Status(s)
		if !status.Valid() {
			respond.Error(w, r, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, s))
			return
		}

		filter.Status = &status
	}

	clients, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(clients))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateClientRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Status          *client.Status   `json:"status,omitempty" validate:"omitempty,oneof=active paused inactive prospect"`
	MonthlyFee      *decimal.Decimal `json:"monthly_fee,omitempty"`
	Commission      *bool            `json:"commission,omitempty"`
	PaymentDay      *int             `json:"payment_day,omitempty" validate:"omitempty,min=1,max=31"`
	ClearPaymentDay bool             `json:"clear_payment_day,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateClientRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, client.UpdateParams{
		Name:            req.Name,
		Status:          req.Status,
		MonthlyFee:      req.MonthlyFee,
		Commission:      req.Commission,
		PaymentDay:      req.PaymentDay,
		ClearPaymentDay: req.ClearPaymentDay,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", apperr.ErrValidation)
	}

	return id, nil
}
