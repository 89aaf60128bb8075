package costs_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tablero/internal/cost"
	"github.com/MrJamesThe3rd/tablero/internal/http/costs"
	"github.com/MrJamesThe3rd/tablero/internal/importer"
	"github.com/MrJamesThe3rd/tablero/internal/period"
)

type fixture struct {
	repo  *cost.MockRepository
	rates *cost.MockRateSource
	h     http.Handler
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := cost.NewMockRepository(ctrl)
	rates := cost.NewMockRateSource(ctrl)
	svc := cost.NewService(repo, rates, nil)

	r := chi.NewRouter()
	r.Route("/costs", costs.NewHandler(svc, importer.NewService(svc)).Routes)

	return fixture{repo: repo, rates: rates, h: r}
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	return got
}

func TestHandler_Create(t *testing.T) {
	f := setup(t)

	f.rates.EXPECT().ExchangeRate(gomock.Any()).Return(decimal.NewFromInt(1200), nil)
	f.repo.EXPECT().CreateCost(gomock.Any(), gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	body := `{"name":"Alquiler","amount_ars":"100000","type":"fixed","period":"03-2026"}`
	f.h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/costs", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decodeMap(t, rec)
	assert.Equal(t, "83.33", got["amount_usd"])
	assert.Equal(t, "03-2026", got["period"])
}

func TestHandler_CreateRejectsBadType(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	body := `{"name":"Alquiler","amount_ars":"1","type":"monthly","period":"03-2026"}`
	f.h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/costs", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List(t *testing.T) {
	f := setup(t)
	march := period.New(2026, time.March)
	fixed := cost.TypeFixed

	f.repo.EXPECT().ListCosts(gomock.Any(), cost.ListFilter{Period: &march, Type: &fixed}).
		Return([]*cost.Cost{{ID: uuid.New(), Name: "Alquiler", Type: fixed, Period: march}}, nil)

	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/costs?period=03-2026&type=fixed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	f.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/costs?period=2026-03", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	f := setup(t)
	id := uuid.New()

	f.repo.EXPECT().DeleteCost(gomock.Any(), id).Return(cost.ErrNotFound)

	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/costs/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartBody(t *testing.T, fields map[string]string, file string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != "" {
		fw, err := mw.CreateFormFile("file", "costos.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	t.Run("Imported", func(t *testing.T) {
		f := setup(t)

		f.rates.EXPECT().ExchangeRate(gomock.Any()).Return(decimal.NewFromInt(1000), nil)
		f.repo.EXPECT().CreateCosts(gomock.Any(), gomock.Len(2)).Return(nil)

		body, ct := multipartBody(t, map[string]string{"period": "04-2026"},
			"Nombre;Monto ARS;Tipo\nAlquiler;100.000;Fijo\nDominio;5.000,00;Variable\n")

		req := httptest.NewRequest(http.MethodPost, "/costs/import", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		f.h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		got := decodeMap(t, rec)
		assert.EqualValues(t, 2, got["imported"])
	})

	t.Run("MissingFile", func(t *testing.T) {
		f := setup(t)

		body, ct := multipartBody(t, map[string]string{"period": "04-2026"}, "")

		req := httptest.NewRequest(http.MethodPost, "/costs/import", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		f.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidRow", func(t *testing.T) {
		f := setup(t)

		body, ct := multipartBody(t, nil, "Nombre;Monto ARS;Tipo\nAlquiler;mucho;Fijo\n")

		req := httptest.NewRequest(http.MethodPost, "/costs/import", body)
		req.Header.Set("Content-Type", ct)

		rec := httptest.NewRecorder()
		f.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 2")
	})
}
