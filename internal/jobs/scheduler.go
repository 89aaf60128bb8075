package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Schedules holds cron specs; an empty spec disables the job.
type Schedules struct {
	ExchangeRate string
	Balance      string
}

type Scheduler struct {
	cron      *cron.Cron
	jobs      *Jobs
	logger    *slog.Logger
	schedules Schedules
}

func NewScheduler(jobs *Jobs, logger *slog.Logger, schedules Schedules) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:      c,
		jobs:      jobs,
		logger:    logger,
		schedules: schedules,
	}
}

// Start registers the enabled jobs and starts the scheduler. An invalid spec is an error and
// nothing is started.
func (s *Scheduler) Start() error {
	entries := []struct {
		name string
		spec string
		run  func()
	}{
		{name: "exchange rate sync", spec: s.schedules.ExchangeRate, run: s.jobs.SyncExchangeRate},
		{name: "balance sync", spec: s.schedules.Balance, run: s.jobs.SyncBalance},
	}

	for _, e := range entries {
		if e.spec == "" {
			continue
		}

		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			return fmt.Errorf("scheduling %s: %w", e.name, err)
		}

		s.logger.Info("scheduled job", "job", e.name, "schedule", e.spec)
	}

	s.cron.Start()

	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
