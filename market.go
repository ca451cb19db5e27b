package stocksum

import "github.com/shopspring/decimal"

// Quote is the current market price of one symbol, in its native currency.
// Quotes are transient: fetched fresh on every aggregation, never persisted.
type Quote struct {
	Symbol   string
	Price    decimal.Decimal
	Currency string
}

// RateTable maps a currency code to the multiplier that converts one unit of
// that currency into the table's base currency. The raw provider rate is
// expressed the opposite way round (units of currency per base unit), so the
// client stores the reciprocal.
type RateTable map[string]decimal.Decimal

// MarketData provides live quotes and currency conversion tables. The
// aggregation engine depends on this interface only; the rapid package
// implements it against the remote provider.
type MarketData interface {
	// Quotes returns current quotes for the given symbols, keyed by symbol.
	// An empty symbol set short-circuits to an empty result without issuing
	// a request.
	Quotes(symbols []string) (map[string]Quote, error)

	// ExchangeRates returns the conversion table for the given base currency.
	// A zero asOf date means the latest rates; otherwise the rates valid on
	// that historical date.
	ExchangeRates(asOf Date, base string) (RateTable, error)
}
