package collections

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/collection"
	"github.com/MrJamesThe3rd/tablero/internal/http/incomes"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type Handler struct {
	svc *collection.Service
}

func NewHandler(svc *collection.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/pending", h.pending)
	r.Post("/", h.record)
}

type entryResponse struct {
	ClientID         uuid.UUID          `json:"client_id"`
	ClientName       string             `json:"client_name"`
	MonthlyFee       decimal.Decimal    `json:"monthly_fee"`
	PaymentDay       int                `json:"payment_day"`
	DueDate          string             `json:"due_date"`
	DaysUntil        int                `json:"days_until"`
	Urgency          collection.Urgency `json:"urgency"`
	MonthApplied     period.Period      `json:"month_applied"`
	AlreadyCollected bool               `json:"already_collected"`
}

type pendingResponse struct {
	Period       period.Period   `json:"period"`
	Today        string          `json:"today"`
	Entries      []entryResponse `json:"entries"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	p, err := respond.Period(r, "period", time.Now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	list, err := h.svc.ListPending(r.Context(), p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := pendingResponse{
		Period:       list.Period,
		Today:        list.Today.Format(time.DateOnly),
		Entries:      make([]entryResponse, len(list.Entries)),
		TotalPending: list.TotalPending,
	}

	for i, e := range list.Entries {
		resp.Entries[i] = entryResponse{
			ClientID:         e.ClientID,
			ClientName:       e.ClientName,
			MonthlyFee:       e.MonthlyFee,
			PaymentDay:       e.PaymentDay,
			DueDate:          e.DueDate.Format(time.DateOnly),
			DaysUntil:        e.DaysUntil,
			Urgency:          e.Urgency,
			MonthApplied:     e.MonthApplied,
			AlreadyCollected: e.AlreadyCollected,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type recordRequest struct {
	ClientID uuid.UUID      `json:"client_id" validate:"required"`
	Period   *period.Period `json:"period" validate:"required"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	inc, err := h.svc.Record(r.Context(), req.ClientID, *req.Period)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, incomes.ToResponse(inc))
}
