package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type Aggregator interface {
	Periods(now time.Time) []period.Period
	Compute(ctx context.Context, p period.Period, view summary.View) (*summary.Summary, error)
}

type Handler struct {
	svc Aggregator
	now func() time.Time
}

func NewHandler(svc Aggregator) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Routes registers /periods and /summary on the API root.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/periods", h.periods)
	r.Get("/summary", h.summary)
}

type periodsResponse struct {
	Current period.Period   `json:"current"`
	Periods []period.Period `json:"periods"`
}

func (h *Handler) periods(w http.ResponseWriter, _ *http.Request) {
	now := h.now()

	respond.JSON(w, http.StatusOK, periodsResponse{Current: period.Of(now), Periods: h.svc.Periods(now)})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	p, err := respond.Period(r, "period", h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	view, err := summary.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sum, err := h.svc.Compute(r.Context(), p, view)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, sum)
}
