package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tablero/internal/app"
	"github.com/MrJamesThe3rd/tablero/internal/cache"
	"github.com/MrJamesThe3rd/tablero/internal/config"
	"github.com/MrJamesThe3rd/tablero/internal/database"
	tableroHttp "github.com/MrJamesThe3rd/tablero/internal/http"
	"github.com/MrJamesThe3rd/tablero/internal/http/clients"
	"github.com/MrJamesThe3rd/tablero/internal/http/collections"
	"github.com/MrJamesThe3rd/tablero/internal/http/costs"
	"github.com/MrJamesThe3rd/tablero/internal/http/incomes"
	"github.com/MrJamesThe3rd/tablero/internal/http/remotesync"
	"github.com/MrJamesThe3rd/tablero/internal/http/reports"
	settingsHandler "github.com/MrJamesThe3rd/tablero/internal/http/settings"
	summaryHandler "github.com/MrJamesThe3rd/tablero/internal/http/summary"
	"github.com/MrJamesThe3rd/tablero/internal/jobs"
	"github.com/MrJamesThe3rd/tablero/internal/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	summaryCache := cache.New(nil, cfg.Redis.TTL)

	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			slog.Warn("summary cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer rdb.Close()

			summaryCache = cache.New(rdb, cfg.Redis.TTL)
		}
	}

	svc := app.New(cfg, db, summaryCache)

	scheduler := jobs.NewScheduler(
		jobs.NewJobs(svc.RateSync, svc.BalanceSync, cfg.Exchange.Timeout+cfg.Balance.Timeout, logger),
		logger,
		jobs.Schedules{ExchangeRate: cfg.Exchange.Schedule, Balance: cfg.Balance.Schedule},
	)

	if err := scheduler.Start(); err != nil {
		return err
	}

	defer func() {
		<-scheduler.Stop().Done()
	}()

	if cfg.Session.Secret == "" {
		slog.Warn("SESSION_SECRET is not set, API authentication is disabled")
	}

	router := tableroHttp.New(tableroHttp.Options{
		Timeout:     cfg.Server.Timeout,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
		SessionKey:  []byte(cfg.Session.Secret),
		SSLRedirect: cfg.IsProduction(),
	}, tableroHttp.Handlers{
		Summary:     summaryHandler.NewHandler(svc.Summary),
		Collections: collections.NewHandler(svc.Collections),
		Clients:     clients.NewHandler(svc.Clients),
		Costs:       costs.NewHandler(svc.Costs, svc.Importer),
		Income:      incomes.NewHandler(svc.Income),
		Settings:    settingsHandler.NewHandler(svc.Settings, svc.FX),
		Sync:        remotesync.NewHandler(svc.RateSync, svc.BalanceSync),
		Reports:     reports.NewHandler(svc.Reports),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
