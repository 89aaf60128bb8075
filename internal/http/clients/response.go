package clients

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/client"
)

type clientResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Status     client.Status   `json:"status"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
	Commission bool            `json:"commission"`
	PaymentDay *int            `json:"payment_day,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Status:     c.Status,
		MonthlyFee: c.MonthlyFee,
		Commission: c.Commission,
		PaymentDay: c.PaymentDay,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}
