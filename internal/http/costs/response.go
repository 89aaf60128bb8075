package costs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type costResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	AmountARS decimal.Decimal `json:"amount_ars"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
	Type      cost.Type       `json:"type"`
	Note      string          `json:"note,omitempty"`
	Period    period.Period   `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *cost.Cost) costResponse {
	return costResponse{
		ID:        c.ID,
		Name:      c.Name,
		AmountARS: c.AmountARS,
		AmountUSD: c.AmountUSD,
		Type:      c.Type,
		Note:      c.Note,
		Period:    c.Period,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toResponseList(costs []*cost.Cost) []costResponse {
	resp := make([]costResponse, len(costs))
	for i, c := range costs {
		resp[i] = toResponse(c)
	}

	return resp
}
