// Package balance triggers the third-party balance sync and stores the figures it reports.
package balance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
	"github.com/MrJamesThe3rd/tablero/internal/settings"
)

var (
	ErrNotConfigured = fmt.Errorf("%w: balance sync url is not configured", apperr.ErrUnavailable)
	ErrSyncRejected  = fmt.Errorf("%w: balance sync rejected", apperr.ErrUnavailable)
)

// Result is the sync endpoint's answer. Balances are USD and already netted.
type Result struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	BalanceNet *decimal.Decimal `json:"balance_net,omitempty"`
	HoldAmount *decimal.Decimal `json:"hold_amount,omitempty"`
}

type Client struct {
	url    string
	token  string
	client *http.Client
}

func NewClient(url, token string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

// Trigger asks the remote service to sync. A reply with success=false returns ErrSyncRejected
// together with the decoded result.
func (c *Client) Trigger(ctx context.Context) (*Result, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: triggering balance sync: %w", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decoding balance sync response (status %d): %w", apperr.ErrUnavailable, resp.StatusCode, err)
	}

	if !res.Success || resp.StatusCode >= http.StatusBadRequest {
		return &res, fmt.Errorf("%w: %s", ErrSyncRejected, res.Message)
	}

	return &res, nil
}

type Trigger interface {
	Trigger(ctx context.Context) (*Result, error)
}

type BalanceStore interface {
	SetExternalBalance(ctx context.Context, b settings.ExternalBalance) error
}

type Syncer struct {
	remote Trigger
	store  BalanceStore
}

func NewSyncer(remote Trigger, store BalanceStore) *Syncer {
	return &Syncer{remote: remote, store: store}
}

// Sync triggers the remote sync and persists whichever balances it returned.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	res, err := s.remote.Trigger(ctx)
	if err != nil {
		if errors.Is(err, ErrSyncRejected) {
			slog.Warn("balance sync rejected", "message", res.Message)
		}

		return res, err
	}

	err = s.store.SetExternalBalance(ctx, settings.ExternalBalance{Net: res.BalanceNet, Hold: res.HoldAmount})
	if err != nil {
		return res, fmt.Errorf("saving external balance: %w", err)
	}

	slog.Info("balance synced", "message", res.Message)

	return res, nil
}
