// Package exchange fetches the ARS/USD quote from DolarAPI and applies it as the exchange rate.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tablero/internal/apperr"
)

const DefaultURL = "https://dolarapi.com/v1/dolares/blue"

// ErrInvalidQuote is returned when the source answers without a usable sell rate.
var ErrInvalidQuote = fmt.Errorf("%w: invalid exchange-rate quote", apperr.ErrUnavailable)

// Quote is a buy/sell pair in ARS per USD.
type Quote struct {
	Buy       decimal.Decimal
	Sell      decimal.Decimal
	UpdatedAt time.Time
}

type quoteResponse struct {
	Compra             decimal.NullDecimal `json:"compra"`
	Venta              decimal.NullDecimal `json:"venta"`
	FechaActualizacion *time.Time          `json:"fechaActualizacion"`
}

type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}

	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Fetch(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching quote: %w", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d from %s", apperr.ErrUnavailable, resp.StatusCode, c.url)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuote, err)
	}

	if !body.Venta.Valid || !body.Venta.Decimal.IsPositive() {
		return nil, ErrInvalidQuote
	}

	q := &Quote{Sell: body.Venta.Decimal, UpdatedAt: time.Now()}

	if body.Compra.Valid {
		q.Buy = body.Compra.Decimal
	}

	if body.FechaActualizacion != nil {
		q.UpdatedAt = *body.FechaActualizacion
	}

	return q, nil
}
