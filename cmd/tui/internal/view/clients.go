package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/client"
)

type ClientService interface {
	List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error)
	Update(ctx context.Context, id uuid.UUID, params client.UpdateParams) (*client.Client, error)
}

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateEdit
)

type ClientsModel struct {
	svc ClientService

	state   clientsState
	table   table.Model
	clients []*client.Client
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName       string
	formStatus     client.Status
	formFee        string
	formDay        string
	formCommission bool
}

func NewClientsModel(svc ClientService) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Fee (USD)", Width: 12},
		{Title: "Day", Width: 5},
		{Title: "Commission", Width: 10},
	}

	return ClientsModel{svc: svc, table: newTable(columns), loading: true}
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.clients = msg.clients
		m.refreshTable()

		return m, nil

	case clientSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == clientsStateEdit {
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
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return m, nil
	}

	c := m.clients[idx]
	m.formName = c.Name
	m.formStatus = c.Status
	m.formFee = c.MonthlyFee.String()
	m.formCommission = c.Commission

	m.formDay = ""
	if c.PaymentDay != nil {
		m.formDay = strconv.Itoa(*c.PaymentDay)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[client.Status]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Active", client.StatusActive),
					huh.NewOption("Paused", client.StatusPaused),
					huh.NewOption("Inactive", client.StatusInactive),
					huh.NewOption("Prospect", client.StatusProspect),
				).
				Value(&m.formStatus),

			huh.NewInput().
				Key("fee").
				Title("Monthly fee (USD)").
				Value(&m.formFee).
				Validate(validateAmount),

			huh.NewInput().
				Key("payment_day").
				Title("Payment day").
				Placeholder("1-31, empty for none").
				Value(&m.formDay).
				Validate(func(s string) error {
					_, err := parsePaymentDay(s)
					return err
				}),

			huh.NewConfirm().
				Key("commission").
				Title("Carries commission?").
				Value(&m.formCommission),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

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

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())

	if m.state == clientsStateEdit && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel("Edit Client", m.form.View()))
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		day := "-"
		if c.PaymentDay != nil {
			day = strconv.Itoa(*c.PaymentDay)
		}

		commission := ""
		if c.Commission {
			commission = "yes"
		}

		rows = append(rows, table.Row{c.Name, string(c.Status), FormatMoney(c.MonthlyFee), day, commission})
	}

	m.table.SetRows(rows)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number such as 550 or 1200.50")
	}

	if d.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}

	return nil
}

// parsePaymentDay returns nil for an empty input.
func parsePaymentDay(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return nil, fmt.Errorf("payment day must be between 1 and 31")
	}

	return &day, nil
}

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

type clientSaveMsg struct {
	err error
}

func (m ClientsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.svc.List(ctx, client.ListFilter{})

		return loadClientsMsg{clients: clients, err: err}
	}
}

func (m ClientsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.clients) {
		return nil
	}

	id := m.clients[idx].ID
	name, status, commission := m.formName, m.formStatus, m.formCommission
	fee, feeErr := decimal.NewFromString(strings.TrimSpace(m.formFee))
	day, dayErr := parsePaymentDay(m.formDay)

	return func() tea.Msg {
		if feeErr != nil || dayErr != nil {
			return clientSaveMsg{err: fmt.Errorf("invalid form input")}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.Update(ctx, id, client.UpdateParams{
			Name:            &name,
			Status:          &status,
			MonthlyFee:      &fee,
			Commission:      &commission,
			PaymentDay:      day,
			ClearPaymentDay: day == nil,
		})

		return clientSaveMsg{err: err}
	}
}
