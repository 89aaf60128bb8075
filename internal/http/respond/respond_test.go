package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{name: "Validation", err: fmt.Errorf("%w: fee must not be negative", apperr.ErrValidation), status: 400, detail: "validation failed: fee must not be negative"},
		{name: "NotFound", err: fmt.Errorf("client %w", apperr.ErrNotFound), status: 404, detail: "client not found"},
		{name: "Conflict", err: apperr.ErrConflict, status: 409, detail: "conflict"},
		{name: "Unavailable", err: apperr.ErrUnavailable, status: 502, detail: "collaborator unavailable"},
		{name: "InternalHidden", err: errors.New("pq: connection refused"), status: 500, detail: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var p respond.Problem
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.detail, p.Detail)
		})
	}
}

type payload struct {
	Name   string           `json:"name" validate:"required"`
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"name":"Luz","amount":"10.5"}`},
		{name: "MissingField", body: `{"amount":"10"}`, wantErr: "Name is required"},
		{name: "UnknownField", body: `{"name":"Luz","amount":"1","extra":1}`, wantErr: "unknown field"},
		{name: "Malformed", body: `{`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := respond.Decode(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &p)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Luz", p.Name)

				return
			}

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPeriod(t *testing.T) {
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	p, err := respond.Period(httptest.NewRequest(http.MethodGet, "/?period=01-2026", nil), "period", now)
	require.NoError(t, err)
	assert.Equal(t, period.New(2026, time.January), p)

	p, err = respond.Period(httptest.NewRequest(http.MethodGet, "/", nil), "period", now)
	require.NoError(t, err)
	assert.Equal(t, period.New(2026, time.March), p)

	_, err = respond.Period(httptest.NewRequest(http.MethodGet, "/?period=2026-01", nil), "period", now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
