package summary

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

// View selects which date attributes income to a period.
type View string

const (
	// ViewLiquidity counts income by the month the cash arrived.
	ViewLiquidity View = "liquidity"
	// ViewPerformance counts income by the service month it pays for.
	ViewPerformance View = "performance"
)

// ParseView accepts "liquidity" or "performance"; empty means liquidity.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewLiquidity:
		return ViewLiquidity, nil
	case ViewPerformance:
		return ViewPerformance, nil
	}

	return "", fmt.Errorf("%w: unknown view %q", apperr.ErrValidation, s)
}

// Summary is the net-income picture of one period. All amounts are USD except TotalARS.
type Summary struct {
	Period period.Period `json:"period"`
	View   View          `json:"view"`

	TotalUSD    decimal.Decimal `json:"total_usd"`
	TotalARS    decimal.Decimal `json:"total_ars"`
	IncomeCount int             `json:"income_count"`

	FixedUSD       decimal.Decimal `json:"fixed_usd"`
	VariableUSD    decimal.Decimal `json:"variable_usd"`
	CostsUSD       decimal.Decimal `json:"costs_usd"`
	CommissionCost decimal.Decimal `json:"commission_cost"`
	TotalCosts     decimal.Decimal `json:"total_costs"`

	NetHonoraria    decimal.Decimal `json:"net_honoraria"`
	ExternalBalance decimal.Decimal `json:"external_balance"`
	ExternalHold    decimal.Decimal `json:"external_hold"`
	NetUSD          decimal.Decimal `json:"net_usd"`

	ProjectedRevenue  decimal.Decimal `json:"projected_revenue"`
	ActiveClients     int             `json:"active_clients"`
	CommissionClients int             `json:"commission_clients"`

	Ratio        decimal.Decimal `json:"ratio"`
	Margin       decimal.Decimal `json:"margin"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// Detail is a summary together with the records it was computed from.
type Detail struct {
	Summary *Summary
	Income  []*income.Income
	Costs   []*cost.Cost
}

var hundred = decimal.NewFromInt(100)

// ratio is income over total costs, zero when there are no costs.
func ratio(totalUSD, totalCosts decimal.Decimal) decimal.Decimal {
	if totalCosts.IsZero() {
		return decimal.Zero
	}

	return totalUSD.Div(totalCosts).Round(2)
}

// margin is net over income as a percentage with one decimal, zero when there is no income.
func margin(netUSD, totalUSD decimal.Decimal) decimal.Decimal {
	if totalUSD.IsZero() {
		return decimal.Zero
	}

	return netUSD.Div(totalUSD).Mul(hundred).Round(1)
}
