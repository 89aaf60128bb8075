package income

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

var (
	ErrNotFound  = fmt.Errorf("income %w", apperr.ErrNotFound)
	ErrDuplicate = fmt.Errorf("%w: income already recorded for this client and service month", apperr.ErrConflict)
)

// Income is a collected client fee. Period is the month the cash arrived in; MonthApplied is the
// service month the fee pays for. A client has at most one income per MonthApplied.
type Income struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	ClientName   string // loaded via JOIN
	AmountUSD    decimal.Decimal
	AmountARS    decimal.Decimal
	CollectedOn  time.Time
	Period       period.Period
	MonthApplied period.Period
	Note         string
	CreatedAt    time.Time
}
