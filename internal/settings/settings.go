package settings

import (
	"github.com/shopspring/decimal"
)

// Key names a scalar in the configuration table.
type Key string

const (
	KeyExchangeRate    Key = "exchange_rate"
	KeyCommissionRate  Key = "commission_rate_per_client"
	KeyExternalBalance Key = "external_balance_net"
	KeyExternalHold    Key = "external_hold_amount"
)

var (
	DefaultExchangeRate   = decimal.NewFromInt(1500)
	DefaultCommissionRate = decimal.NewFromInt(55)
)

// Snapshot is the configuration as read at the start of an operation.
type Snapshot struct {
	ExchangeRate    decimal.Decimal
	CommissionRate  decimal.Decimal
	ExternalBalance decimal.Decimal
	ExternalHold    decimal.Decimal
}

// Defaults is the snapshot of an empty configuration table.
func Defaults() Snapshot {
	return Snapshot{
		ExchangeRate:    DefaultExchangeRate,
		CommissionRate:  DefaultCommissionRate,
		ExternalBalance: decimal.Zero,
		ExternalHold:    decimal.Zero,
	}
}

// ExternalBalance carries a balance sync result. Nil fields are left untouched.
type ExternalBalance struct {
	Net  *decimal.Decimal
	Hold *decimal.Decimal
}
