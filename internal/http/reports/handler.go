package reports

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/report"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{period}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	p, err := period.Parse(chi.URLParam(r, "period"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	view, err := summary.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	// Buffered: a failed read must still produce a problem response, not a truncated file.
	var buf bytes.Buffer
	if err := h.svc.WriteCSV(r.Context(), &buf, p, view); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(p, view, "csv")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write report", "period", p.String(), "error", err)
	}
}
