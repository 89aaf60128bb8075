package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/client"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params client.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *client.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: client.CreateParams{
				Name:       " Acme ",
				MonthlyFee: decimal.NewFromInt(550),
				Commission: true,
				PaymentDay: new(15),
			}},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						assert.Equal(t, "Acme", c.Name)
						assert.Equal(t, client.StatusActive, c.Status)

						c.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:    "MissingName",
			args:    args{params: client.CreateParams{Name: "  "}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "NegativeFee",
			args:    args{params: client.CreateParams{Name: "Acme", MonthlyFee: decimal.NewFromInt(-1)}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "PaymentDayOutOfRange",
			args:    args{params: client.CreateParams{Name: "Acme", PaymentDay: new(32)}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "UnknownStatus",
			args:    args{params: client.CreateParams{Name: "Acme", Status: "archived"}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "RepoError",
			args: args{params: client.CreateParams{Name: "Acme"}},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := client.NewService(repo, nil)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, apperr.ErrValidation) {
					assert.ErrorIs(t, err, apperr.ErrValidation)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	existing := func() *client.Client {
		return &client.Client{
			ID:         id,
			Name:       "Acme",
			Status:     client.StatusActive,
			MonthlyFee: decimal.NewFromInt(500),
			PaymentDay: new(10),
		}
	}

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)
		cache := client.NewMockInvalidator(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().Bump(gomock.Any()).Return(nil)

		paused := client.StatusPaused
		svc := client.NewService(repo, cache)
		got, err := svc.Update(context.Background(), id, client.UpdateParams{Status: &paused})
		require.NoError(t, err)

		assert.Equal(t, client.StatusPaused, got.Status)
		assert.Equal(t, "Acme", got.Name)
		assert.True(t, decimal.NewFromInt(500).Equal(got.MonthlyFee))
		require.NotNil(t, got.PaymentDay)
		assert.Equal(t, 10, *got.PaymentDay)
	})

	t.Run("ClearPaymentDay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)

		svc := client.NewService(repo, nil)
		got, err := svc.Update(context.Background(), id, client.UpdateParams{ClearPaymentDay: true})
		require.NoError(t, err)
		assert.Nil(t, got.PaymentDay)
	})

	t.Run("InvalidFeeIsNotSaved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(existing(), nil)

		svc := client.NewService(repo, nil)
		_, err := svc.Update(context.Background(), id, client.UpdateParams{MonthlyFee: new(decimal.NewFromInt(-5))})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := client.NewMockRepository(ctrl)

		repo.EXPECT().GetClient(gomock.Any(), id).Return(nil, client.ErrNotFound)

		svc := client.NewService(repo, nil)
		_, err := svc.Update(context.Background(), id, client.UpdateParams{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	active := client.StatusActive
	repo.EXPECT().
		ListClients(gomock.Any(), client.ListFilter{Status: &active}).
		Return([]*client.Client{{ID: uuid.New(), Status: client.StatusActive}}, nil)

	svc := client.NewService(repo, nil)
	got, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestClient_Commissionable(t *testing.T) {
	tests := []struct {
		status     client.Status
		commission bool
		want       bool
	}{
		{client.StatusActive, true, true},
		{client.StatusActive, false, false},
		{client.StatusPaused, true, false},
		{client.StatusProspect, true, false},
	}

	for _, tt := range tests {
		c := client.Client{Status: tt.status, Commission: tt.commission}
		assert.Equal(t, tt.want, c.Commissionable(), "%s/%v", tt.status, tt.commission)
	}
}
