// Package fx converts between ARS and USD using the single configured exchange rate.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

// RatePlaces is the number of decimal places the configuration table keeps for a rate.
const RatePlaces = 4

var (
	// ErrInvalidRate is returned for a non-positive exchange rate.
	ErrInvalidRate = fmt.Errorf("%w: exchange rate must be greater than zero", apperr.ErrValidation)
	// ErrRatePrecision is returned for a rate that would be rounded when stored.
	ErrRatePrecision = fmt.Errorf("%w: exchange rate must have at most %d decimal places", apperr.ErrValidation, RatePlaces)
)

// ValidateRate rejects rates that cannot be divided by, and rates the store could not keep exactly.
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}

	if !rate.Equal(rate.Round(RatePlaces)) {
		return ErrRatePrecision
	}

	return nil
}

// ToUSD converts an ARS amount at rate (ARS per USD), rounded half-up to cents.
func ToUSD(amountARS, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}

	return amountARS.Div(rate).Round(2), nil
}

// ToARS converts a USD amount at rate. No rounding is applied.
func ToARS(amountUSD, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}

	return amountUSD.Mul(rate), nil
}
