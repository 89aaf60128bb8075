package income

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tablero/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=income
type Repository interface {
	// CreateIncome returns ErrDuplicate when the client already has an income for inc.MonthApplied.
	CreateIncome(ctx context.Context, inc *Income) error
	FindByClientMonth(ctx context.Context, clientID uuid.UUID, monthApplied period.Period) (*Income, error)
	ListIncome(ctx context.Context, filter ListFilter) ([]*Income, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Period       *period.Period
	MonthApplied *period.Period
	ClientID     *uuid.UUID
}

func (s *Service) Create(ctx context.Context, inc *Income) error {
	return s.repo.CreateIncome(ctx, inc)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Income, error) {
	return s.repo.ListIncome(ctx, filter)
}

// Collected reports whether clientID already paid for monthApplied.
func (s *Service) Collected(ctx context.Context, clientID uuid.UUID, monthApplied period.Period) (bool, error) {
	_, err := s.repo.FindByClientMonth(ctx, clientID, monthApplied)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// CollectedClients returns the clients that have an income applied to monthApplied.
func (s *Service) CollectedClients(ctx context.Context, monthApplied period.Period) (map[uuid.UUID]bool, error) {
	incomes, err := s.repo.ListIncome(ctx, ListFilter{MonthApplied: &monthApplied})
	if err != nil {
		return nil, err
	}

	collected := make(map[uuid.UUID]bool, len(incomes))
	for _, inc := range incomes {
		collected[inc.ClientID] = true
	}

	return collected, nil
}
