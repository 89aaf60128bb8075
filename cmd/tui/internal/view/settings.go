package view

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

type SettingsService interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
	SetCommissionRate(ctx context.Context, rate decimal.Decimal) error
}

type RateService interface {
	UpdateRate(ctx context.Context, rate decimal.Decimal) (*fx.RateUpdate, error)
}

type RateSyncer interface {
	Sync(ctx context.Context) (*exchange.SyncResult, error)
}

type SettingsModel struct {
	svc   SettingsService
	rates RateService
	sync  RateSyncer

	snap    settings.Snapshot
	form    *huh.Form
	editing bool

	loading bool
	err     error
	status  string

	formRate       string
	formCommission string
}

func NewSettingsModel(svc SettingsService, rates RateService, sync RateSyncer) SettingsModel {
	return SettingsModel{svc: svc, rates: rates, sync: sync, loading: true}
}

func (m SettingsModel) Title() string { return "Settings" }
func (m SettingsModel) ShortHelp() string {
	if m.editing {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit rates | s: sync exchange rate | r: refresh"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSettingsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.snap = msg.snap
		}

		return m, nil

	case settingsSaveMsg:
		m.status = msg.status
		m.editing = false
		m.form = nil

		return m, m.loadCmd()
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "s":
			m.status = "Syncing exchange rate..."
			return m, m.syncCmd()
		}
	}

	return m, nil
}

func (m SettingsModel) enterEditMode() (tea.Model, tea.Cmd) {
	m.formRate = m.snap.ExchangeRate.String()
	m.formCommission = m.snap.CommissionRate.String()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("exchange_rate").
				Title("Exchange rate (ARS per USD)").
				Value(&m.formRate).
				Validate(validateRate),

			huh.NewInput().
				Key("commission_rate").
				Title("Commission per client (USD)").
				Value(&m.formCommission).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.editing = true

	return m, m.form.Init()
}

func (m SettingsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editing = false
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m SettingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Exchange rate:       %s ARS/USD\n", FormatMoney(m.snap.ExchangeRate))
	fmt.Fprintf(&b, "Commission/client:   %s USD\n", FormatMoney(m.snap.CommissionRate))
	fmt.Fprintf(&b, "External balance:    %s USD\n", FormatMoney(m.snap.ExternalBalance))
	fmt.Fprintf(&b, "External hold:       %s USD", FormatMoney(m.snap.ExternalHold))

	content := panel("Configuration", b.String())

	if m.editing && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Edit Rates", m.form.View()))
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func validateRate(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number such as 1200")
	}

	return fx.ValidateRate(d)
}

type loadSettingsMsg struct {
	snap settings.Snapshot
	err  error
}

type settingsSaveMsg struct {
	status string
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.svc.Snapshot(ctx)

		return loadSettingsMsg{snap: snap, err: err}
	}
}

// saveCmd writes only the values that changed. A rate change recalculates fixed costs.
func (m SettingsModel) saveCmd() tea.Cmd {
	rate, rateErr := decimal.NewFromString(strings.TrimSpace(m.formRate))
	commission, commErr := decimal.NewFromString(strings.TrimSpace(m.formCommission))
	prev := m.snap

	return func() tea.Msg {
		if rateErr != nil || commErr != nil {
			return settingsSaveMsg{status: "Error saving: invalid form input"}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		var notes []string

		if !rate.Equal(prev.ExchangeRate) {
			res, err := m.rates.UpdateRate(ctx, rate)
			switch {
			case errors.Is(err, apperr.ErrPartialCascade):
				notes = append(notes, fmt.Sprintf("rate saved, %d fixed costs updated, some failed", res.Recalculated))
			case err != nil:
				return settingsSaveMsg{status: fmt.Sprintf("Error saving rate: %v", err)}
			default:
				notes = append(notes, fmt.Sprintf("rate saved, %d fixed costs updated", res.Recalculated))
			}
		}

		if !commission.Equal(prev.CommissionRate) {
			if err := m.svc.SetCommissionRate(ctx, commission); err != nil {
				return settingsSaveMsg{status: fmt.Sprintf("Error saving commission: %v", err)}
			}

			notes = append(notes, "commission saved")
		}

		if len(notes) == 0 {
			return settingsSaveMsg{status: "No changes"}
		}

		return settingsSaveMsg{status: strings.Join(notes, "; ")}
	}
}

func (m SettingsModel) syncCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*dbTimeout)
		defer cancel()

		res, err := m.sync.Sync(ctx)

		switch {
		case err == nil:
			return settingsSaveMsg{status: fmt.Sprintf("Synced sell rate %s, %d fixed costs updated",
				FormatMoney(res.Quote.Sell), res.Update.Recalculated)}
		case errors.Is(err, apperr.ErrPartialCascade) && res != nil && res.Update != nil:
			return settingsSaveMsg{status: fmt.Sprintf("Synced sell rate %s, some fixed costs failed to update",
				FormatMoney(res.Quote.Sell))}
		default:
			return settingsSaveMsg{status: fmt.Sprintf("Sync failed: %v", err)}
		}
	}
}
