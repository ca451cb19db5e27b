package stocksum

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Entry is one buy (or sell, with a negative count) transaction in the
// entries ledger.
//
// Cost is the frozen cost-basis contribution: the home-currency amount paid,
// converted with the exchange rate valid on Date at the time the entry was
// written. It is never recomputed afterwards.
type Entry struct {
	Date      Date
	Symbol    string
	Count     decimal.Decimal
	UnitPrice decimal.Decimal // in the stock's native currency
	Cost      decimal.Decimal // frozen, in home currency
}

// Dividend is one dividend receipt in the dividends ledger.
//
// Amount is in the stock's native currency; ConvertedAmount follows the same
// freeze-at-write-time rule as Entry.Cost.
type Dividend struct {
	Date            Date
	Symbol          string
	Amount          decimal.Decimal
	ConvertedAmount decimal.Decimal // frozen, in home currency
}

// Snapshot is one row of the portfolio valuation series: the market value of
// the portfolio and the cumulative profit since the first entry, net of
// dividends, both in home currency.
type Snapshot struct {
	Date   Date
	Value  decimal.Decimal
	Profit decimal.Decimal
}

// DistinctSymbols returns the sorted set of unique symbols appearing in the
// entries. It never contains duplicates and is empty for an empty ledger.
func DistinctSymbols(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Symbol]; !ok {
			seen[e.Symbol] = struct{}{}
			symbols = append(symbols, e.Symbol)
		}
	}
	slices.Sort(symbols)
	return symbols
}
