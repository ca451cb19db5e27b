// Package rapid implements the stocksum market-data interface against the
// RapidAPI-hosted quote and exchange-rate endpoints.
package rapid

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/stocksum"
)

const (
	defaultQuoteURL = "https://yahoo-finance15.p.rapidapi.com/api/yahoo/qu/quote"
	defaultRateURL  = "https://exchangerate-api.p.rapidapi.com/rapid"

	// requestTimeout bounds every remote call; a timeout surfaces as
	// ErrDataUnavailable rather than hanging the command.
	requestTimeout = 10 * time.Second
)

// Client fetches quotes and exchange rates from the remote provider.
//
// Exchange-rate tables are memoized by (date, base) for the lifetime of the
// client only, so repeated lookups within one command do not issue duplicate
// requests. Quotes are never cached.
type Client struct {
	token      string
	httpClient *http.Client
	quoteURL   string
	rateURL    string
	rateMemo   map[string]stocksum.RateTable
}

var _ stocksum.MarketData = (*Client)(nil)

// New returns a client authenticating with the given API token.
func New(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		quoteURL:   defaultQuoteURL,
		rateURL:    defaultRateURL,
		rateMemo:   make(map[string]stocksum.RateTable),
	}
}

// jwget performs an authenticated HTTP GET request and unmarshals the JSON
// response into data. Any transport, status or decoding failure is reported
// as ErrDataUnavailable.
func (c *Client) jwget(addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", stocksum.ErrDataUnavailable, addr, err)
	}
	req.Header.Set("X-RapidAPI-Key", c.token)
	req.Header.Set("X-RapidAPI-Host", req.URL.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", stocksum.ErrDataUnavailable, addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", stocksum.ErrDataUnavailable, addr, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response from %s: %v", stocksum.ErrDataUnavailable, addr, err)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", stocksum.ErrDataUnavailable, addr, err)
	}
	return nil
}
