package cost

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

// Type tells whether a cost recurs every month or belongs to one period only.
type Type string

const (
	TypeFixed    Type = "fixed"
	TypeVariable Type = "variable"
)

func (t Type) Valid() bool {
	return t == TypeFixed || t == TypeVariable
}

var ErrNotFound = fmt.Errorf("cost %w", apperr.ErrNotFound)

// Cost is an expense entered in ARS. AmountUSD is derived from AmountARS and the exchange rate
// and is never written directly.
type Cost struct {
	ID        uuid.UUID
	Name      string
	AmountARS decimal.Decimal
	AmountUSD decimal.Decimal
	Type      Type
	Note      string
	Period    period.Period
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// CascadeError lists the fixed costs whose USD amount could not be re-derived after a rate change.
// The ones that were updated stay updated.
type CascadeError struct {
	Failed []uuid.UUID
	Errs   []error
}

func (e *CascadeError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, id := range e.Failed {
		ids[i] = id.String()
	}

	return fmt.Sprintf("%s: %d fixed costs not recalculated (%s)", apperr.ErrPartialCascade, len(e.Failed), strings.Join(ids, ", "))
}

func (e *CascadeError) Is(target error) bool {
	return target == apperr.ErrPartialCascade
}

func (e *CascadeError) Unwrap() []error {
	return e.Errs
}
