package incomes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type Handler struct {
	svc *income.Service
}

func NewHandler(svc *income.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type incomeResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ClientName   string          `json:"client_name"`
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	AmountARS    decimal.Decimal `json:"amount_ars"`
	CollectedOn  string          `json:"collected_on"`
	Period       period.Period   `json:"period"`
	MonthApplied period.Period   `json:"month_applied"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToResponse(inc *income.Income) incomeResponse {
	return incomeResponse{
		ID:           inc.ID,
		ClientID:     inc.ClientID,
		ClientName:   inc.ClientName,
		AmountUSD:    inc.AmountUSD,
		AmountARS:    inc.AmountARS,
		CollectedOn:  inc.CollectedOn.Format(time.DateOnly),
		Period:       inc.Period,
		MonthApplied: inc.MonthApplied,
		Note:         inc.Note,
		CreatedAt:    inc.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := income.ListFilter{}
	q := r.URL.Query()

	for key, dst := range map[string]**period.Period{
		"period":        &filter.Period,
		"month_applied": &filter.MonthApplied,
	} {
		s := q.Get(key)
		if s == "" {
			continue
		}

		p, err := period.Parse(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		*dst = &p
	}

	if s := q.Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, fmt.Errorf("%w: invalid client_id", apperr.ErrValidation))
			return
		}

		filter.ClientID = &id
	}

	incomes, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]incomeResponse, len(incomes))
	for i, inc := range incomes {
		resp[i] = ToResponse(inc)
	}

	respond.JSON(w, http.StatusOK, resp)
}
