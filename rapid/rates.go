package rapid

import (
	"fmt"
	"net/url"

	"github.com/etnz/stocksum"
	"github.com/shopspring/decimal"
)

// rateInfo is the provider's exchange-rate payload.
//
//	{"base": "CZK", "rates": {"EUR": 0.04, "USD": 0.043, ...}}
//
// A raw rate is "units of currency per one unit of base"; the table we hand
// out stores the reciprocal so that multiplying a native amount by its rate
// yields the base-currency amount.
type rateInfo struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRates fetches the conversion table for the given base currency,
// as of the given date or the latest when asOf is zero.
//
// The response is sanity-checked before use: the provider's reported base
// must match the requested one, every rate must be positive, and the base's
// rate against itself, when present, must be exactly 1. Any violation fails
// with ErrInvalidRateTable naming the offending value.
func (c *Client) ExchangeRates(asOf stocksum.Date, base string) (stocksum.RateTable, error) {
	key := rateMemoKey(asOf, base)
	if table, ok := c.rateMemo[key]; ok {
		return table, nil
	}

	endpoint := "latest"
	if !asOf.IsZero() {
		endpoint = asOf.Format("2006-01-02")
	}
	addr := fmt.Sprintf("%s/%s?base=%s", c.rateURL, endpoint, url.QueryEscape(base))

	var content rateInfo
	if err := c.jwget(addr, &content); err != nil {
		return nil, err
	}
	if content.Base != base {
		return nil, fmt.Errorf("%w: provider base %q does not match requested %q", stocksum.ErrInvalidRateTable, content.Base, base)
	}

	one := decimal.NewFromInt(1)
	table := make(stocksum.RateTable, len(content.Rates))
	for currency, raw := range content.Rates {
		if !raw.IsPositive() {
			return nil, fmt.Errorf("%w: rate %s for currency %q is not positive", stocksum.ErrInvalidRateTable, raw, currency)
		}
		if currency == base && !raw.Equal(one) {
			return nil, fmt.Errorf("%w: base %q rate against itself is %s, want 1", stocksum.ErrInvalidRateTable, base, raw)
		}
		table[currency] = one.Div(raw)
	}

	c.rateMemo[key] = table
	return table, nil
}

// rateMemoKey keys the in-process memoization so that a changed historical
// date is never masked by a previous lookup.
func rateMemoKey(asOf stocksum.Date, base string) string {
	if asOf.IsZero() {
		return "latest|" + base
	}
	return asOf.String() + "|" + base
}
