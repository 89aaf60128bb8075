package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error

	CountCommissionable(ctx context.Context) (int, error)
}

type Invalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache Invalidator
}

func NewService(repo Repository, cache Invalidator) *Service {
	return &Service{repo: repo, cache: cache}
}

type CreateParams struct {
	Name       string
	Status     Status
	MonthlyFee decimal.Decimal
	Commission bool
	PaymentDay *int
}

// UpdateParams is a partial update: nil fields keep their stored value.
// ClearPaymentDay removes the billing day and takes precedence over PaymentDay.
type UpdateParams struct {
	Name            *string
	Status          *Status
	MonthlyFee      *decimal.Decimal
	Commission      *bool
	PaymentDay      *int
	ClearPaymentDay bool
}

type ListFilter struct {
	Status *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if params.Status == "" {
		params.Status = StatusActive
	}

	c := &Client{
		Name:       strings.TrimSpace(params.Name),
		Status:     params.Status,
		MonthlyFee: params.MonthlyFee,
		Commission: params.Commission,
		PaymentDay: params.PaymentDay,
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.ListClients(ctx, filter)
}

// Active lists the clients that currently bill.
func (s *Service) Active(ctx context.Context) ([]*Client, error) {
	status := StatusActive
	return s.repo.ListClients(ctx, ListFilter{Status: &status})
}

// CountCommissionable counts active clients that carry a commission.
func (s *Service) CountCommissionable(ctx context.Context) (int, error) {
	return s.repo.CountCommissionable(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Client, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Status != nil {
		c.Status = *params.Status
	}

	if params.MonthlyFee != nil {
		c.MonthlyFee = *params.MonthlyFee
	}

	if params.Commission != nil {
		c.Commission = *params.Commission
	}

	if params.PaymentDay != nil {
		c.PaymentDay = params.PaymentDay
	}

	if params.ClearPaymentDay {
		c.PaymentDay = nil
	}

	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("failed to invalidate summary cache", "error", err)
	}
}

func validate(c *Client) error {
	if c.Name == "" {
		return fmt.Errorf("%w: client name is required", apperr.ErrValidation)
	}

	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown client status %q", apperr.ErrValidation, c.Status)
	}

	if c.MonthlyFee.IsNegative() {
		return fmt.Errorf("%w: monthly fee must not be negative", apperr.ErrValidation)
	}

	if c.PaymentDay != nil && (*c.PaymentDay < 1 || *c.PaymentDay > 31) {
		return fmt.Errorf("%w: payment day must be between 1 and 31", apperr.ErrValidation)
	}

	return nil
}
