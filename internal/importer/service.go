package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type CostCreator interface {
	CreateBatch(ctx context.Context, params []cost.CreateParams) ([]*cost.Cost, error)
}

// Service imports a cost spreadsheet into one period.
type Service struct {
	parser *Parser
	costs  CostCreator
}

func NewService(costs CostCreator) *Service {
	return &Service{parser: NewParser(), costs: costs}
}

// Import parses r and creates every row as a cost of period p. Nothing is stored
// when any row is invalid.
func (s *Service) Import(ctx context.Context, r io.Reader, p period.Period) ([]*cost.Cost, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: period is required", apperr.ErrValidation)
	}

	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	params := make([]cost.CreateParams, len(rows))
	for i, row := range rows {
		params[i] = cost.CreateParams{
			Name:      row.Name,
			AmountARS: row.AmountARS,
			Type:      row.Type,
			Note:      row.Note,
			Period:    p,
		}
	}

	costs, err := s.costs.CreateBatch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating costs: %w", err)
	}

	return costs, nil
}
