package rapid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/stocksum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a test server for both endpoints and
// returns a counter of requests received.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c := New("test-token")
	c.quoteURL = server.URL + "/quote"
	c.rateURL = server.URL + "/rates"
	return c, &calls
}

func TestQuotes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("X-RapidAPI-Key"))
		assert.NotEmpty(t, r.Header.Get("X-RapidAPI-Host"))
		assert.Equal(t, "/quote/AAPL,MSFT", r.URL.Path)
		w.Write([]byte(`[
			{"symbol": "AAPL", "regularMarketPrice": 178.72, "currency": "USD"},
			{"symbol": "MSFT", "regularMarketPrice": 330.5, "currency": "USD"}
		]`))
	})

	// symbols arrive unsorted, the request path must not
	quotes, err := c.Quotes([]string{"MSFT", "AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.True(t, quotes["AAPL"].Price.Equal(decimal.RequireFromString("178.72")))
	assert.Equal(t, "USD", quotes["AAPL"].Currency)
	assert.Equal(t, "MSFT", quotes["MSFT"].Symbol)
}

func TestQuotesEmptySet(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty symbol set")
	})
	quotes, err := c.Quotes(nil)
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.Zero(t, *calls)
}

func TestQuotesUnavailable(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		_, err := c.Quotes([]string{"AAPL"})
		assert.ErrorIs(t, err, stocksum.ErrDataUnavailable)
	})
	t.Run("malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not": "a list"`))
		})
		_, err := c.Quotes([]string{"AAPL"})
		assert.ErrorIs(t, err, stocksum.ErrDataUnavailable)
	})
}

func TestQuotesInvalid(t *testing.T) {
	t.Run("unrequested symbol", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"symbol": "TSLA", "regularMarketPrice": 10, "currency": "USD"}]`))
		})
		_, err := c.Quotes([]string{"AAPL"})
		assert.ErrorIs(t, err, stocksum.ErrInvalidQuote)
	})
	t.Run("non-positive price", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"symbol": "AAPL", "regularMarketPrice": 0, "currency": "USD"}]`))
		})
		_, err := c.Quotes([]string{"AAPL"})
		assert.ErrorIs(t, err, stocksum.ErrInvalidQuote)
	})
}

func TestExchangeRates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates/latest", r.URL.Path)
		assert.Equal(t, "CZK", r.URL.Query().Get("base"))
		w.Write([]byte(`{"base": "CZK", "rates": {"CZK": 1, "EUR": 0.04, "USD": 0.05}}`))
	})

	table, err := c.ExchangeRates(stocksum.Date{}, "CZK")
	require.NoError(t, err)
	// stored rates are reciprocals: 1 EUR is worth 25 CZK
	assert.True(t, table["EUR"].Equal(decimal.RequireFromString("25")))
	assert.True(t, table["USD"].Equal(decimal.RequireFromString("20")))
	assert.True(t, table["CZK"].Equal(decimal.NewFromInt(1)))
}

func TestExchangeRatesHistorical(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates/2023-03-01", r.URL.Path)
		w.Write([]byte(`{"base": "CZK", "rates": {"EUR": 0.05}}`))
	})
	table, err := c.ExchangeRates(stocksum.MustParseDate("01/03/2023"), "CZK")
	require.NoError(t, err)
	assert.True(t, table["EUR"].Equal(decimal.RequireFromString("20")))
}

func TestExchangeRatesInvalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "base mismatch", body: `{"base": "EUR", "rates": {"CZK": 25}}`},
		{name: "non-positive rate", body: `{"base": "CZK", "rates": {"EUR": -0.04}}`},
		{name: "self rate not one", body: `{"base": "CZK", "rates": {"CZK": 2, "EUR": 0.04}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			_, err := c.ExchangeRates(stocksum.Date{}, "CZK")
			assert.ErrorIs(t, err, stocksum.ErrInvalidRateTable)
		})
	}
}

func TestExchangeRatesMemoized(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base": "CZK", "rates": {"EUR": 0.04}}`))
	})

	_, err := c.ExchangeRates(stocksum.Date{}, "CZK")
	require.NoError(t, err)
	_, err = c.ExchangeRates(stocksum.Date{}, "CZK")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls, "repeated latest lookup must be served from the memo")

	_, err = c.ExchangeRates(stocksum.MustParseDate("01/03/2023"), "CZK")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "a historical date is a distinct memo key")

	_, err = c.ExchangeRates(stocksum.MustParseDate("01/03/2023"), "CZK")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}
