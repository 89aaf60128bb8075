package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

func TestService_Snapshot(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *settings.MockRepository)
		want      settings.Snapshot
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "EmptyTableUsesDefaults",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetValues(gomock.Any()).Return(map[settings.Key]decimal.Decimal{}, nil)
			},
			want: settings.Defaults(),
		},
		{
			name: "StoredValuesWin",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetValues(gomock.Any()).Return(map[settings.Key]decimal.Decimal{
					settings.KeyExchangeRate:    decimal.NewFromInt(1200),
					settings.KeyCommissionRate:  decimal.NewFromInt(60),
					settings.KeyExternalBalance: decimal.RequireFromString("-250.50"),
					settings.KeyExternalHold:    decimal.NewFromInt(40),
				}, nil)
			},
			want: settings.Snapshot{
				ExchangeRate:    decimal.NewFromInt(1200),
				CommissionRate:  decimal.NewFromInt(60),
				ExternalBalance: decimal.RequireFromString("-250.50"),
				ExternalHold:    decimal.NewFromInt(40),
			},
		},
		{
			name: "NonPositiveRateFallsBack",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetValues(gomock.Any()).Return(map[settings.Key]decimal.Decimal{
					settings.KeyExchangeRate: decimal.Zero,
				}, nil)
			},
			want: settings.Defaults(),
		},
		{
			name: "RepoError",
			setupMock: func(m *settings.MockRepository) {
				m.EXPECT().GetValues(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := settings.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := settings.NewService(repo, nil)
			got, err := svc.Snapshot(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.ExchangeRate.Equal(got.ExchangeRate))
			assert.True(t, tt.want.CommissionRate.Equal(got.CommissionRate))
			assert.True(t, tt.want.ExternalBalance.Equal(got.ExternalBalance))
			assert.True(t, tt.want.ExternalHold.Equal(got.ExternalHold))
		})
	}
}

func TestService_SetExchangeRate(t *testing.T) {
	t.Run("SavesAndInvalidates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := settings.NewMockRepository(ctrl)
		cache := settings.NewMockInvalidator(ctrl)

		rate := decimal.NewFromInt(1200)
		repo.EXPECT().SetValues(gomock.Any(), map[settings.Key]decimal.Decimal{settings.KeyExchangeRate: rate}).Return(nil)
		cache.EXPECT().Bump(gomock.Any()).Return(nil)

		svc := settings.NewService(repo, cache)
		assert.NoError(t, svc.SetExchangeRate(context.Background(), rate))
	})

	t.Run("RejectsZero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := settings.NewMockRepository(ctrl)

		svc := settings.NewService(repo, nil)
		err := svc.SetExchangeRate(context.Background(), decimal.Zero)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_SetCommissionRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo, nil)

	err := svc.SetCommissionRate(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.EXPECT().SetValues(gomock.Any(), gomock.Len(1)).Return(nil)
	assert.NoError(t, svc.SetCommissionRate(context.Background(), decimal.Zero))
}

func TestService_SetExternalBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo, nil)

	assert.NoError(t, svc.SetExternalBalance(context.Background(), settings.ExternalBalance{}))

	net := decimal.RequireFromString("812.40")
	repo.EXPECT().
		SetValues(gomock.Any(), map[settings.Key]decimal.Decimal{settings.KeyExternalBalance: net}).
		Return(nil)
	assert.NoError(t, svc.SetExternalBalance(context.Background(), settings.ExternalBalance{Net: &net}))
}
