package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/importer"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type fakeCosts struct {
	got []cost.CreateParams
	err error
}

func (f *fakeCosts) CreateBatch(_ context.Context, params []cost.CreateParams) ([]*cost.Cost, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.got = params

	out := make([]*cost.Cost, len(params))
	for i, p := range params {
		out[i] = &cost.Cost{Name: p.Name, AmountARS: p.AmountARS, Type: p.Type, Period: p.Period}
	}

	return out, nil
}

const sheet = "Nombre;Monto ARS;Tipo;Observación\nAlquiler;350.000;Fijo;\nDominio;12.500,50;Variable;renovación\n"

func TestService_Import(t *testing.T) {
	march := period.New(2026, time.March)

	t.Run("CreatesEveryRowInPeriod", func(t *testing.T) {
		costs := &fakeCosts{}
		svc := importer.NewService(costs)

		created, err := svc.Import(context.Background(), strings.NewReader(sheet), march)
		require.NoError(t, err)
		require.Len(t, created, 2)
		require.Len(t, costs.got, 2)

		for _, p := range costs.got {
			assert.Equal(t, march, p.Period)
		}

		assert.Equal(t, "renovación", costs.got[1].Note)
	})

	t.Run("InvalidSheetCreatesNothing", func(t *testing.T) {
		costs := &fakeCosts{}
		svc := importer.NewService(costs)

		_, err := svc.Import(context.Background(), strings.NewReader(sheet+"Luz;x;Fijo;\n"), march)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Nil(t, costs.got)
	})

	t.Run("PeriodRequired", func(t *testing.T) {
		_, err := importer.NewService(&fakeCosts{}).Import(context.Background(), strings.NewReader(sheet), period.Period{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("StoreError", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := importer.NewService(&fakeCosts{err: boom}).Import(context.Background(), strings.NewReader(sheet), march)
		assert.ErrorIs(t, err, boom)
	})
}
