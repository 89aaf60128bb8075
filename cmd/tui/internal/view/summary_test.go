package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type fakeSummaries struct{}

func (fakeSummaries) Periods(now time.Time) []period.Period { return period.Window(now) }

func (fakeSummaries) Compute(_ context.Context, p period.Period, v summary.View) (*summary.Summary, error) {
	return &summary.Summary{Period: p, View: v, NetUSD: decimal.NewFromInt(820)}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSummaryModel_Navigation(t *testing.T) {
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	m := NewSummaryModel(fakeSummaries{}, now)

	assert.Equal(t, "03-2026", m.selected().String())

	next, cmd := m.Update(key("left"))
	m = next.(SummaryModel)
	require.NotNil(t, cmd)
	assert.Equal(t, "02-2026", m.selected().String())
	assert.True(t, m.loading)

	next, _ = m.Update(cmd())
	m = next.(SummaryModel)
	assert.False(t, m.loading)
	assert.Equal(t, "02-2026", m.sum.Period.String())

	next, _ = m.Update(key("v"))
	m = next.(SummaryModel)
	assert.Equal(t, summary.ViewPerformance, m.view)
}

func TestSummaryModel_IgnoresStaleLoads(t *testing.T) {
	m := NewSummaryModel(fakeSummaries{}, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC))
	stale := m.loadCmd()

	next, _ := m.Update(key("right"))
	m = next.(SummaryModel)

	next, _ = m.Update(stale())
	m = next.(SummaryModel)
	assert.True(t, m.loading)
	assert.Nil(t, m.sum)
}

func TestSummaryModel_StopsAtWindowEdges(t *testing.T) {
	m := NewSummaryModel(fakeSummaries{}, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC))

	for range 5 {
		next, _ := m.Update(key("right"))
		m = next.(SummaryModel)
	}

	assert.Equal(t, "05-2026", m.selected().String())
}
