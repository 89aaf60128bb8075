package income_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tablero/internal/income"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

func TestService_Collected(t *testing.T) {
	clientID := uuid.New()
	month := period.New(2026, time.April)

	type testCase struct {
		name      string
		setupMock func(m *income.MockRepository)
		want      bool
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Found",
			setupMock: func(m *income.MockRepository) {
				m.EXPECT().FindByClientMonth(gomock.Any(), clientID, month).Return(&income.Income{ClientID: clientID}, nil)
			},
			want: true,
		},
		{
			name: "NotFound",
			setupMock: func(m *income.MockRepository) {
				m.EXPECT().FindByClientMonth(gomock.Any(), clientID, month).Return(nil, income.ErrNotFound)
			},
			want: false,
		},
		{
			name: "RepoError",
			setupMock: func(m *income.MockRepository) {
				m.EXPECT().FindByClientMonth(gomock.Any(), clientID, month).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := income.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := income.NewService(repo).Collected(context.Background(), clientID, month)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CollectedClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := income.NewMockRepository(ctrl)

	month := period.New(2026, time.April)
	a, b := uuid.New(), uuid.New()

	repo.EXPECT().
		ListIncome(gomock.Any(), income.ListFilter{MonthApplied: &month}).
		Return([]*income.Income{{ClientID: a}, {ClientID: b}}, nil)

	got, err := income.NewService(repo).CollectedClients(context.Background(), month)
	require.NoError(t, err)
	assert.True(t, got[a])
	assert.True(t, got[b])
	assert.False(t, got[uuid.New()])
}
