package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tablero/internal/collection"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type CollectionService interface {
	ListPending(ctx context.Context, p period.Period) (*collection.PendingList, error)
	Record(ctx context.Context, clientID uuid.UUID, p period.Period) (*income.Income, error)
}

var urgencyLabels = map[collection.Urgency]string{
	collection.UrgencyOverdue:  "Overdue",
	collection.UrgencyDueToday: "Today",
	collection.UrgencyUrgent:   "Urgent",
	collection.UrgencyThisWeek: "This week",
	collection.UrgencyNormal:   "",
}

type PendingModel struct {
	svc    CollectionService
	period period.Period

	table   table.Model
	list    *collection.PendingList
	loading bool
	err     error
	status  string
}

func NewPendingModel(svc CollectionService, now time.Time) PendingModel {
	columns := []table.Column{
		{Title: "Client", Width: 28},
		{Title: "Fee (USD)", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Days", Width: 6},
		{Title: "Urgency", Width: 10},
		{Title: "Month", Width: 9},
		{Title: "Collected", Width: 9},
	}

	return PendingModel{svc: svc, period: period.Of(now), table: newTable(columns), loading: true}
}

func (m PendingModel) Title() string     { return "Pending Collections" }
func (m PendingModel) ShortHelp() string { return "Esc: back | c: record collection | r: refresh" }

func (m PendingModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PendingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPendingMsg:
		m.loading = false
		m.list, m.err = msg.list, msg.err
		m.refreshTable()

		return m, nil

	case recordMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recorded %s USD from %s for %s",
			FormatMoney(msg.income.AmountUSD), msg.income.ClientName, msg.income.MonthApplied)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.record()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PendingModel) record() (tea.Model, tea.Cmd) {
	if m.list == nil {
		return m, nil
	}

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list.Entries) {
		return m, nil
	}

	entry := m.list.Entries[idx]
	if entry.AlreadyCollected {
		m.status = fmt.Sprintf("%s already paid for %s", entry.ClientName, entry.MonthApplied)
		return m, nil
	}

	p := m.period

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inc, err := m.svc.Record(ctx, entry.ClientID, p)

		return recordMsg{income: inc, err: err}
	}
}

func (m PendingModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending collections...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Today: %s | Pending: %s USD",
		FormatDate(m.list.Today), activeStyle(FormatMoney(m.list.TotalPending)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PendingModel) refreshTable() {
	if m.list == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.list.Entries))
	for _, e := range m.list.Entries {
		collected := ""
		if e.AlreadyCollected {
			collected = "yes"
		}

		rows = append(rows, table.Row{
			e.ClientName,
			FormatMoney(e.MonthlyFee),
			FormatDate(e.DueDate),
			fmt.Sprint(e.DaysUntil),
			urgencyLabels[e.Urgency],
			e.MonthApplied.String(),
			collected,
		})
	}

	m.table.SetRows(rows)
}

type loadPendingMsg struct {
	list *collection.PendingList
	err  error
}

type recordMsg struct {
	income *income.Income
	err    error
}

func (m PendingModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.svc.ListPending(ctx, m.period)

		return loadPendingMsg{list: list, err: err}
	}
}
