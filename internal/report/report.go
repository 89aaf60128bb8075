// Package report renders a period's figures as downloadable files.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type DetailSource interface {
	Detail(ctx context.Context, p period.Period, view summary.View) (*summary.Detail, error)
}

// Service writes period reports.
type Service struct {
	details DetailSource
}

func NewService(details DetailSource) *Service {
	return &Service{details: details}
}

// Filename is the suggested download name, e.g. "tablero_03-2026_liquidity.csv".
func Filename(p period.Period, view summary.View, ext string) string {
	return fmt.Sprintf("tablero_%s_%s.%s", p, view, ext)
}

// WriteCSV writes the summary block followed by the income and cost rows of p.
// Sections are separated by an empty line; the separator is ';' so es-AR spreadsheets open it directly.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, p period.Period, view summary.View) error {
	d, err := s.details.Detail(ctx, p, view)
	if err != nil {
		return fmt.Errorf("loading period detail: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	sum := d.Summary
	records := [][]string{
		{"Periodo", sum.Period.String()},
		{"Vista", string(sum.View)},
		{"Tipo de cambio", money(sum.ExchangeRate)},
		{"Ingresos USD", money(sum.TotalUSD)},
		{"Ingresos ARS", money(sum.TotalARS)},
		{"Costos fijos USD", money(sum.FixedUSD)},
		{"Costos variables USD", money(sum.VariableUSD)},
		{"Comisiones USD", money(sum.CommissionCost)},
		{"Costos totales USD", money(sum.TotalCosts)},
		{"Honorarios netos USD", money(sum.NetHonoraria)},
		{"Saldo externo USD", money(sum.ExternalBalance)},
		{"Neto USD", money(sum.NetUSD)},
		{"Ratio", sum.Ratio.StringFixed(2)},
		{"Margen %", sum.Margin.StringFixed(1)},
		{},
		{"Ingresos"},
		{"Cliente", "Cobrado", "Mes aplicado", "USD", "ARS", "Nota"},
	}

	for _, inc := range d.Income {
		records = append(records, []string{
			inc.ClientName,
			inc.CollectedOn.Format("2006-01-02"),
			inc.MonthApplied.String(),
			money(inc.AmountUSD),
			money(inc.AmountARS),
			inc.Note,
		})
	}

	records = append(records,
		[]string{},
		[]string{"Costos"},
		[]string{"Nombre", "Tipo", "ARS", "USD", "Nota"},
	)

	for _, c := range d.Costs {
		records = append(records, []string{c.Name, string(c.Type), money(c.AmountARS), money(c.AmountUSD), c.Note})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

// Digest is a plain-text overview of the period, one line per income, suitable for pasting into a message.
func Digest(d *summary.Detail) string {
	var sb strings.Builder

	sum := d.Summary
	fmt.Fprintf(&sb, "Resumen %s (%s)\n", sum.Period, sum.View)

	for _, inc := range d.Income {
		fmt.Fprintf(&sb, "* %s | %s | +%s USD | %s\n",
			inc.CollectedOn.Format("2006-01-02"), inc.ClientName, money(inc.AmountUSD), inc.MonthApplied)
	}

	fmt.Fprintf(&sb, "Ingresos: %s USD en %s cobros\n", money(sum.TotalUSD), strconv.Itoa(sum.IncomeCount))
	fmt.Fprintf(&sb, "Costos: %s USD\n", money(sum.TotalCosts))
	fmt.Fprintf(&sb, "Neto: %s USD (margen %s%%)\n", money(sum.NetUSD), sum.Margin.StringFixed(1))

	return sb.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
