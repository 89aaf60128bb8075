// Package app assembles the domain services shared by the API server and the TUI.
package app

import (
	"database/sql"

	"github.com/MrJamesThe3rd/tablero/internal/balance"
	"github.com/MrJamesThe3rd/tablero/internal/cache"
	"github.com/MrJamesThe3rd/tablero/internal/client"
	clientStore "github.com/MrJamesThe3rd/tablero/internal/client/store"
	"github.com/MrJamesThe3rd/tablero/internal/collection"
	"github.com/MrJamesThe3rd/tablero/internal/commission"
	"github.com/MrJamesThe3rd/tablero/internal/config"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	costStore "github.com/MrJamesThe3rd/tablero/internal/cost/store"
	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/importer"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	incomeStore "github.com/MrJamesThe3rd/tablero/internal/income/store"
	"github.com/MrJamesThe3rd/tablero/internal/report"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/tablero/internal/settings/store"
	"github.com/MrJamesThe3rd/tablero/internal/summary"
)

type Services struct {
	Settings    *settings.Service
	FX          *fx.Service
	Clients     *client.Service
	Costs       *cost.Service
	Income      *income.Service
	Summary     *summary.Service
	Collections *collection.Service
	Importer    *importer.Service
	Reports     *report.Service
	RateSync    *exchange.Syncer
	BalanceSync *balance.Syncer
}

// New wires every service on db. c may be a pass-through cache.
func New(cfg *config.Config, db *sql.DB, c *cache.Cache) *Services {
	var (
		settingsService = settings.NewService(settingsStore.New(db), c)
		clientService   = client.NewService(clientStore.New(db), c)
		costService     = cost.NewService(costStore.New(db), settingsService, c)
		incomeService   = income.NewService(incomeStore.New(db))
		fxService       = fx.NewService(settingsService, costService, c)
	)

	summaryService := summary.NewService(
		settingsService,
		incomeService,
		costService,
		clientService,
		commission.NewCalculator(clientService),
		c,
	)

	return &Services{
		Settings:    settingsService,
		FX:          fxService,
		Clients:     clientService,
		Costs:       costService,
		Income:      incomeService,
		Summary:     summaryService,
		Collections: collection.NewService(clientService, incomeService, settingsService, c),
		Importer:    importer.NewService(costService),
		Reports:     report.NewService(summaryService),
		RateSync:    exchange.NewSyncer(exchange.NewClient(cfg.Exchange.URL, cfg.Exchange.Timeout), fxService),
		BalanceSync: balance.NewSyncer(balance.NewClient(cfg.Balance.URL, cfg.Balance.Token, cfg.Balance.Timeout), settingsService),
	}
}
