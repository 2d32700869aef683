// Package fx fetches a session-scoped snapshot of foreign exchange rates.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the open.er-api.com endpoint serving latest rates
// keyed by base currency.
const DefaultBaseURL = "https://open.er-api.com/v6/latest"

// DefaultTimeout bounds the single rate fetch at startup. The rate source
// is untrusted for liveness; a timeout degrades the session to 1:1
// conversion instead of blocking it.
const DefaultTimeout = 15 * time.Second

// Table is an immutable snapshot of currency multipliers relative to one
// base currency. A nil *Table is a legal value meaning "no conversion
// data"; Lookup on a nil table always misses.
type Table struct {
	base  string
	rates map[string]decimal.Decimal
}

// Base returns the base currency this table converts into.
func (t *Table) Base() string {
	if t == nil {
		return ""
	}
	return t.base
}

// Lookup returns the multiplier that converts 1 unit of the base currency
// into the given currency. The second return is false when the currency
// is unknown to the table or the table is absent.
func (t *Table) Lookup(currency string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Decimal{}, false
	}
	rate, ok := t.rates[currency]
	return rate, ok
}

// Len returns the number of currencies in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rates)
}

// NewTable builds a table from an explicit rate map. Used by tests and
// by Fetch.
func NewTable(base string, rates map[string]decimal.Decimal) *Table {
	return &Table{base: base, rates: rates}
}

// Client fetches rate tables over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client against the default rate source with the
// default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
}

// NewClientWithBaseURL returns a client against a custom endpoint.
func NewClientWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Fetch performs one request for the latest rates relative to base.
// Any network or decode failure is returned as an error; callers must
// treat it as "conversion disabled", not as fatal.
func (c *Client) Fetch(ctx context.Context, base string) (*Table, error) {
	addr := fmt.Sprintf("%s/%s", c.baseURL, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("fx.Fetch: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fx.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fx.Fetch: unexpected status %s", resp.Status)
	}

	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fx.Fetch: decode response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("fx.Fetch: response has no rates for base %s", base)
	}

	return NewTable(base, payload.Rates), nil
}
