package costs

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/importer"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc       *cost.Service
	importSvc *importer.Service
}

func NewHandler(svc *cost.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCostRequest struct {
	Name      string           `json:"name" validate:"required"`
	AmountARS *decimal.Decimal `json:"amount_ars" validate:"required"`
	Type      cost.Type        `json:"type" validate:"required,oneof=fixed variable"`
	Note      string           `json:"note"`
	Period    *period.Period   `json:"period" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCostRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), cost.CreateParams{
		Name:      req.Name,
		AmountARS: *req.AmountARS,
		Type:      req.Type,
		Note:      req.Note,
		Period:    *req.Period,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := cost.ListFilter{}

	if s := r.URL.Query().Get("period"); s != "" {
		p, err := period.Parse(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.Period = &p
	}

	if s := r.URL.Query().Get("type"); s != "" {
		t := cost.Type(s)
		if !t.Valid() {
			respond.Error(w, r, fmt.Errorf("%w: unknown cost type %q", apperr.ErrValidation, s))
			return
		}

		filter.Type = &t
	}

	costs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(costs))
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

type updateCostRequest struct {
	Name      *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	AmountARS *decimal.Decimal `json:"amount_ars,omitempty"`
	Type      *cost.Type       `json:"type,omitempty" validate:"omitempty,oneof=fixed variable"`
	Note      *string          `json:"note,omitempty"`
	Period    *period.Period   `json:"period,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateCostRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, cost.UpdateParams{
		Name:      req.Name,
		AmountARS: req.AmountARS,
		Type:      req.Type,
		Note:      req.Note,
		Period:    req.Period,
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

type importResponse struct {
	Imported int            `json:"imported"`
	Costs    []costResponse `json:"costs"`
}

// importCSV takes a multipart form with a "file" spreadsheet and the target "period" (MM-YYYY,
// the current month when omitted).
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, r, fmt.Errorf("%w: failed to parse form: %w", apperr.ErrValidation, err))
		return
	}

	p := period.Of(time.Now())

	if s := r.FormValue("period"); s != "" {
		parsed, err := period.Parse(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		p = parsed
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, fmt.Errorf("%w: file field is required", apperr.ErrValidation))
		return
	}
	defer file.Close()

	costs, err := h.importSvc.Import(r.Context(), file, p)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{Imported: len(costs), Costs: toResponseList(costs)})
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id", apperr.ErrValidation)
	}

	return id, nil
}
