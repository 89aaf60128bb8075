package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tablero/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tablero/internal/app"
	"github.com/MrJamesThe3rd/tablero/internal/cache"
	"github.com/MrJamesThe3rd/tablero/internal/config"
	"github.com/MrJamesThe3rd/tablero/internal/database"
	"github.com/MrJamesThe3rd/tablero/internal/logging"
)

type model struct {
	svc *app.Services

	currentView View

	summaryView  view.SummaryModel
	pendingView  view.PendingModel
	clientsView  view.ClientsModel
	settingsView view.SettingsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewSummary  View = 1
	ViewPending  View = 2
	ViewClients  View = 3
	ViewSettings View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to bubbletea; logs go to stderr.
	slog.SetDefault(logging.New(os.Stderr, cfg.App.LogFormat, cfg.App.LogLevel))

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	return model{
		svc:         app.New(cfg, db, openCache(context.Background(), cfg.Redis.Addr, cfg.Redis.TTL)),
		currentView: ViewMenu,
	}
}

// openCache connects to Redis when addr is set. Any failure leaves a pass-through cache, and
// writes made from the TUI then do not invalidate summaries cached by the API.
func openCache(ctx context.Context, addr string, ttl time.Duration) *cache.Cache {
	if addr == "" {
		return cache.New(nil, ttl)
	}

	rdb, err := cache.Connect(ctx, addr)
	if err != nil {
		slog.Warn("summary cache disabled", "addr", addr, "error", err)
		return cache.New(nil, ttl)
	}

	return cache.New(rdb, ttl)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			now := time.Now()

			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.svc.Summary, now)

				return m, m.summaryView.Init()
			case "2":
				m.currentView = ViewPending
				m.pendingView = view.NewPendingModel(m.svc.Collections, now)

				return m, m.pendingView.Init()
			case "3":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.svc.Clients)

				return m, m.clientsView.Init()
			case "4":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.svc.Settings, m.svc.FX, m.svc.RateSync)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewPending:
		var newModel tea.Model
		newModel, cmd = m.pendingView.Update(msg)
		m.pendingView = newModel.(view.PendingModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tablero\n\n" +
				"1. Monthly Summary\n" +
				"2. Pending Collections\n" +
				"3. Clients\n" +
				"4. Settings\n\n" +
				"q. Quit",
		)
	case ViewSummary:
		return m.summaryView.View()
	case ViewPending:
		return m.pendingView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
