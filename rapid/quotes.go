package rapid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/stocksum"
	"github.com/shopspring/decimal"
)

// quoteInfo is the provider's payload for one symbol.
//
//	[
//	  {"symbol": "AAPL", "regularMarketPrice": 178.72, "currency": "USD"},
//	  ...
//	]
type quoteInfo struct {
	Symbol             string          `json:"symbol"`
	RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
	Currency           string          `json:"currency"`
}

// Quotes fetches current quotes for the given symbols in one request.
//
// An empty symbol set returns an empty map without touching the network.
// Every returned quote must carry a positive price and a symbol that was
// actually requested; anything else fails the whole call with
// ErrInvalidQuote, guarding against provider cross-contamination.
func (c *Client) Quotes(symbols []string) (map[string]stocksum.Quote, error) {
	if len(symbols) == 0 {
		return map[string]stocksum.Quote{}, nil
	}

	requested := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		requested[s] = struct{}{}
	}
	sorted := slices.Sorted(slices.Values(symbols))
	addr := c.quoteURL + "/" + strings.Join(sorted, ",")

	content := make([]quoteInfo, 0, len(symbols))
	if err := c.jwget(addr, &content); err != nil {
		return nil, err
	}

	quotes := make(map[string]stocksum.Quote, len(content))
	for _, info := range content {
		if _, ok := requested[info.Symbol]; !ok {
			return nil, fmt.Errorf("%w: provider returned symbol %q that was not requested", stocksum.ErrInvalidQuote, info.Symbol)
		}
		if !info.RegularMarketPrice.IsPositive() {
			return nil, fmt.Errorf("%w: symbol %q has non-positive price %s", stocksum.ErrInvalidQuote, info.Symbol, info.RegularMarketPrice)
		}
		quotes[info.Symbol] = stocksum.Quote{
			Symbol:   info.Symbol,
			Price:    info.RegularMarketPrice,
			Currency: info.Currency,
		}
	}
	return quotes, nil
}
