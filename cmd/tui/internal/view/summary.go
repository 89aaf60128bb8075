package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type SummaryService interface {
	Periods(now time.Time) []period.Period
	Compute(ctx context.Context, p period.Period, view summary.View) (*summary.Summary, error)
}

type SummaryModel struct {
	svc SummaryService

	periods []period.Period
	idx     int
	view    summary.View

	sum     *summary.Summary
	loading bool
	err     error
}

func NewSummaryModel(svc SummaryService, now time.Time) SummaryModel {
	periods := svc.Periods(now)
	current := period.Of(now)

	idx := 0
	for i, p := range periods {
		if p == current {
			idx = i
			break
		}
	}

	return SummaryModel{svc: svc, periods: periods, idx: idx, view: summary.ViewLiquidity, loading: true}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | ←/→: period | v: view | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) selected() period.Period {
	return m.periods[m.idx]
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		// Ignore answers for a period or view the user already moved away from.
		if msg.period != m.selected() || msg.view != m.view {
			return m, nil
		}

		m.loading = false
		m.sum, m.err = msg.sum, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			if m.idx < len(m.periods)-1 {
				m.idx++
				return m.reload()
			}
		case "right", "l":
			if m.idx > 0 {
				m.idx--
				return m.reload()
			}
		case "v":
			if m.view == summary.ViewLiquidity {
				m.view = summary.ViewPerformance
			} else {
				m.view = summary.ViewLiquidity
			}

			return m.reload()
		case "r":
			return m.reload()
		}
	}

	return m, nil
}

func (m SummaryModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil

	return m, m.loadCmd()
}

func (m SummaryModel) View() string {
	header := fmt.Sprintf("Period: ← %s → | View: %s",
		activeStyle(m.selected().String()), activeStyle(string(m.view)))

	var body string

	switch {
	case m.loading:
		body = "Loading summary..."
	case m.err != nil:
		body = fmt.Sprintf("Error: %v", m.err)
	case m.sum != nil:
		body = renderSummary(m.sum)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(body),
		faint(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func renderSummary(s *summary.Summary) string {
	rows := [][2]string{
		{"Income (USD)", FormatMoney(s.TotalUSD)},
		{"Income (ARS)", FormatMoney(s.TotalARS)},
		{"Collections", fmt.Sprint(s.IncomeCount)},
		{"", ""},
		{"Fixed costs", FormatMoney(s.FixedUSD)},
		{"Variable costs", FormatMoney(s.VariableUSD)},
		{fmt.Sprintf("Commissions (%d)", s.CommissionClients), FormatMoney(s.CommissionCost)},
		{"Total costs", FormatMoney(s.TotalCosts)},
		{"", ""},
		{"Net honoraria", FormatMoney(s.NetHonoraria)},
		{"External balance", FormatMoney(s.ExternalBalance)},
		{"Held externally", FormatMoney(s.ExternalHold)},
		{"Net (USD)", activeStyle(FormatMoney(s.NetUSD))},
		{"", ""},
		{fmt.Sprintf("Projected (%d active)", s.ActiveClients), FormatMoney(s.ProjectedRevenue)},
		{"Ratio", s.Ratio.StringFixed(2)},
		{"Margin", s.Margin.StringFixed(1) + "%"},
		{"Exchange rate", FormatMoney(s.ExchangeRate)},
	}

	var sb strings.Builder

	for _, r := range rows {
		if r[0] == "" {
			sb.WriteString("\n")
			continue
		}

		fmt.Fprintf(&sb, "%-24s %16s\n", r[0], r[1])
	}

	return strings.TrimRight(sb.String(), "\n")
}

type loadSummaryMsg struct {
	period period.Period
	view   summary.View
	sum    *summary.Summary
	err    error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	p, v := m.selected(), m.view

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, err := m.svc.Compute(ctx, p, v)

		return loadSummaryMsg{period: p, view: v, sum: sum, err: err}
	}
}
