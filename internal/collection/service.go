package collection

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/client"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

//go:generate mockgen -source=service.go -destination=dependencies_mock.go -package=collection
type ClientDirectory interface {
	Active(ctx context.Context) ([]*client.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

type IncomeLedger interface {
	Collected(ctx context.Context, clientID uuid.UUID, monthApplied period.Period) (bool, error)
	CollectedClients(ctx context.Context, monthApplied period.Period) (map[uuid.UUID]bool, error)
	Create(ctx context.Context, inc *income.Income) error
}

type SettingsReader interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

type Invalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	clients  ClientDirectory
	income   IncomeLedger
	settings SettingsReader
	cache    Invalidator
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now. The clock's location decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(clients ClientDirectory, ledger IncomeLedger, snapshots SettingsReader, cache Invalidator, opts ...Option) *Service {
	s := &Service{
		clients:  clients,
		income:   ledger,
		settings: snapshots,
		cache:    cache,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) today() time.Time {
	return truncateDay(s.now())
}

// ListPending builds the urgency-ranked list of upcoming payments. p is carried through as the
// cash period a collection recorded from this list is booked under.
func (s *Service) ListPending(ctx context.Context, p period.Period) (*PendingList, error) {
	active, err := s.clients.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active clients: %w", err)
	}

	today := s.today()
	collected := make(map[period.Period]map[uuid.UUID]bool)

	list := &PendingList{Period: p, Today: today, TotalPending: decimal.Zero}

	for _, c := range active {
		if c.PaymentDay == nil {
			continue
		}

		due := NextOccurrence(today, *c.PaymentDay)
		days := DaysBetween(today, due)
		applied := period.Of(due).Next()

		paid, ok := collected[applied]
		if !ok {
			if paid, err = s.income.CollectedClients(ctx, applied); err != nil {
				return nil, fmt.Errorf("checking collections for %s: %w", applied, err)
			}

			collected[applied] = paid
		}

		entry := PendingEntry{
			ClientID:         c.ID,
			ClientName:       c.Name,
			MonthlyFee:       c.MonthlyFee,
			PaymentDay:       *c.PaymentDay,
			DueDate:          due,
			DaysUntil:        days,
			Urgency:          Classify(days),
			MonthApplied:     applied,
			AlreadyCollected: paid[c.ID],
		}

		if !entry.AlreadyCollected {
			list.TotalPending = list.TotalPending.Add(c.MonthlyFee)
		}

		list.Entries = append(list.Entries, entry)
	}

	slices.SortStableFunc(list.Entries, func(a, b PendingEntry) int {
		return cmp.Or(cmp.Compare(a.DaysUntil, b.DaysUntil), cmp.Compare(a.ClientName, b.ClientName))
	})

	return list, nil
}

// Record books the client's monthly fee as collected today, applied to next month's service
// and grouped under cash period p.
func (s *Service) Record(ctx context.Context, clientID uuid.UUID, p period.Period) (*income.Income, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: period is required", apperr.ErrValidation)
	}

	today := s.today()
	applied := period.Of(today).Next()

	c, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if !c.MonthlyFee.IsPositive() {
		return nil, fmt.Errorf("%w: client %s has no monthly fee", apperr.ErrValidation, c.Name)
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	amountARS, err := fx.ToARS(c.MonthlyFee, snap.ExchangeRate)
	if err != nil {
		return nil, err
	}

	paid, err := s.income.Collected(ctx, clientID, applied)
	if err != nil {
		return nil, fmt.Errorf("checking collection: %w", err)
	}

	if paid {
		return nil, ErrDuplicateCollection
	}

	inc := &income.Income{
		ClientID:     c.ID,
		ClientName:   c.Name,
		AmountUSD:    c.MonthlyFee,
		AmountARS:    amountARS,
		CollectedOn:  today,
		Period:       p,
		MonthApplied: applied,
		Note:         "Advance collection for " + applied.String(),
	}

	if err := s.income.Create(ctx, inc); err != nil {
		if errors.Is(err, income.ErrDuplicate) {
			return nil, ErrDuplicateCollection
		}

		return nil, fmt.Errorf("recording collection: %w", err)
	}

	slog.Info("collection recorded", "client", c.Name, "month_applied", applied.String(), "amount_usd", c.MonthlyFee.String())

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			slog.Warn("failed to invalidate summary cache", "error", err)
		}
	}

	return inc, nil
}
