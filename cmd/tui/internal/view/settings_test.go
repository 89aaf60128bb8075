package view

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tablero/internal/exchange"
	"github.com/MrJamesThe3rd/tablero/internal/fx"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

type fakeSettings struct {
	snap       settings.Snapshot
	commission []decimal.Decimal
}

func (f *fakeSettings) Snapshot(context.Context) (settings.Snapshot, error) { return f.snap, nil }

func (f *fakeSettings) SetCommissionRate(_ context.Context, rate decimal.Decimal) error {
	f.commission = append(f.commission, rate)
	return nil
}

type fakeRates struct{ updates []decimal.Decimal }

func (f *fakeRates) UpdateRate(_ context.Context, rate decimal.Decimal) (*fx.RateUpdate, error) {
	f.updates = append(f.updates, rate)
	return &fx.RateUpdate{Rate: rate, Recalculated: 2}, nil
}

type fakeSync struct{ err error }

func (f fakeSync) Sync(context.Context) (*exchange.SyncResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &exchange.SyncResult{
		Quote:  &exchange.Quote{Buy: decimal.NewFromInt(1180), Sell: decimal.NewFromInt(1220)},
		Update: &fx.RateUpdate{Rate: decimal.NewFromInt(1220), Recalculated: 4},
	}, nil
}

func loaded(t *testing.T, m SettingsModel) SettingsModel {
	t.Helper()

	next, _ := m.Update(m.Init()())

	return next.(SettingsModel)
}

func TestSettingsModel_SaveOnlyChanged(t *testing.T) {
	svc := &fakeSettings{snap: settings.Defaults()}
	rates := &fakeRates{}

	m := loaded(t, NewSettingsModel(svc, rates, fakeSync{}))
	m.formRate = "1500"
	m.formCommission = "60"

	msg := m.saveCmd()()
	assert.Empty(t, rates.updates)
	require.Len(t, svc.commission, 1)
	assert.Equal(t, "60", svc.commission[0].String())
	assert.Equal(t, settingsSaveMsg{status: "commission saved"}, msg)

	m.formRate = "1200"
	m.formCommission = "55"

	msg = m.saveCmd()()
	require.Len(t, rates.updates, 1)
	assert.Equal(t, "1200", rates.updates[0].String())
	assert.Equal(t, settingsSaveMsg{status: "rate saved, 2 fixed costs updated"}, msg)
}

func TestSettingsModel_Sync(t *testing.T) {
	m := loaded(t, NewSettingsModel(&fakeSettings{snap: settings.Defaults()}, &fakeRates{}, fakeSync{}))

	next, cmd := m.Update(key("s"))
	m = next.(SettingsModel)
	require.NotNil(t, cmd)
	assert.Equal(t, "Syncing exchange rate...", m.status)

	next, _ = m.Update(cmd())
	assert.Equal(t, "Synced sell rate 1.220,00, 4 fixed costs updated", next.(SettingsModel).status)

	m = loaded(t, NewSettingsModel(&fakeSettings{}, &fakeRates{}, fakeSync{err: errors.New("timeout")}))
	_, cmd = m.Update(key("s"))
	assert.Equal(t, settingsSaveMsg{status: "Sync failed: timeout"}, cmd())
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, validateRate("1200"))
	assert.Error(t, validateRate("0"))
	assert.Error(t, validateRate("abc"))
}
