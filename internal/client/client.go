package client

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

// Status is the commercial state of a client.
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusInactive Status = "inactive"
	StatusProspect Status = "prospect"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusInactive, StatusProspect:
		return true
	}

	return false
}

var (
	ErrNotFound = fmt.Errorf("client %w", apperr.ErrNotFound)
	ErrInUse    = fmt.Errorf("%w: client has recorded income", apperr.ErrConflict)
)

// Client is a fee-paying customer. MonthlyFee is in USD.
type Client struct {
	ID         uuid.UUID
	Name       string
	Status     Status
	MonthlyFee decimal.Decimal
	Commission bool
	PaymentDay *int // 1-31, nil when the client has no fixed billing day
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Active reports whether the client contributes to projected revenue.
func (c *Client) Active() bool {
	return c.Status == StatusActive
}

// Commissionable reports whether the client contributes to commission cost.
func (c *Client) Commissionable() bool {
	return c.Active() && c.Commission
}
