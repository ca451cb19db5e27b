package stocksum

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// This file is the aggregation engine: it folds the transaction logs plus
// live market data into summaries and snapshots. Every function here is a
// pure function of its inputs and the two transient remote reads (quotes,
// rates); nothing is cached across calls and nothing is persisted.

// EntrySummary aggregates all entries of one symbol.
//
// CostBasis accumulates the frozen per-entry cost, so it is already in home
// currency. ActualBasis is the current market value of the position,
// computed fresh from the quote and today's exchange rate.
type EntrySummary struct {
	Symbol      string
	Count       decimal.Decimal
	CostBasis   decimal.Decimal // frozen, home currency
	ActualBasis decimal.Decimal // current, home currency
	ActualPrice decimal.Decimal // current, native currency
	Currency    string
}

// DividendSummary aggregates all dividends of one symbol. The sums are taken
// from the ledger as-is; Currency is the symbol's current quote currency and
// is attached for display only.
type DividendSummary struct {
	Symbol         string
	Value          decimal.Decimal // native currency
	ConvertedValue decimal.Decimal // frozen, home currency
	Currency       string
}

// SummarizeEntries groups the entries by symbol and values each position at
// the current market price, converted into the home currency.
//
// Symbols with a zero net count stay in the result: a fully closed position
// still shows its realized cost basis. A symbol the provider did not return
// a quote for is a hard failure; the summary is complete or not produced.
func SummarizeEntries(entries []Entry, market MarketData, homeCurrency string) (map[string]EntrySummary, error) {
	summaries := make(map[string]EntrySummary, len(entries))
	for _, e := range entries {
		sum := summaries[e.Symbol]
		sum.Symbol = e.Symbol
		sum.Count = sum.Count.Add(e.Count)
		sum.CostBasis = sum.CostBasis.Add(e.Cost)
		summaries[e.Symbol] = sum
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	quotes, err := market.Quotes(DistinctSymbols(entries))
	if err != nil {
		return nil, err
	}
	rates, err := market.ExchangeRates(Date{}, homeCurrency)
	if err != nil {
		return nil, err
	}

	for symbol, sum := range summaries {
		quote, ok := quotes[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: no quote for symbol %q", ErrMissingQuote, symbol)
		}
		rate, err := rates.rate(quote.Currency)
		if err != nil {
			return nil, err
		}
		sum.Currency = quote.Currency
		sum.ActualPrice = quote.Price
		sum.ActualBasis = sum.Count.Mul(quote.Price).Mul(rate)
		summaries[symbol] = sum
	}
	return summaries, nil
}

// SummarizeDividends groups the dividends by symbol, summing the native
// amount and the frozen converted amount. The current quote currency is
// attached for display; it plays no part in the sums.
func SummarizeDividends(dividends []Dividend, market MarketData) (map[string]DividendSummary, error) {
	summaries := make(map[string]DividendSummary, len(dividends))
	symbols := make([]string, 0, len(dividends))
	for _, d := range dividends {
		if _, ok := summaries[d.Symbol]; !ok {
			symbols = append(symbols, d.Symbol)
		}
		sum := summaries[d.Symbol]
		sum.Symbol = d.Symbol
		sum.Value = sum.Value.Add(d.Amount)
		sum.ConvertedValue = sum.ConvertedValue.Add(d.ConvertedAmount)
		summaries[d.Symbol] = sum
	}
	if len(summaries) == 0 {
		return summaries, nil
	}

	quotes, err := market.Quotes(symbols)
	if err != nil {
		return nil, err
	}
	for symbol, sum := range summaries {
		quote, ok := quotes[symbol]
		if !ok {
			return nil, fmt.Errorf("%w: no quote for symbol %q", ErrMissingQuote, symbol)
		}
		sum.Currency = quote.Currency
		summaries[symbol] = sum
	}
	return summaries, nil
}

// TotalDividends sums the frozen converted amounts over the whole dividends
// log. It is zero for an empty log.
func TotalDividends(dividends []Dividend) decimal.Decimal {
	total := decimal.Zero
	for _, d := range dividends {
		total = total.Add(d.ConvertedAmount)
	}
	return total
}

// Convert converts amount from one currency into another using the exchange
// rate valid on asOf. A zero asOf date explicitly means the latest rate.
//
// This is the single historical-rate lookup used to freeze an entry's or
// dividend's converted value at write time.
func Convert(market MarketData, asOf Date, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	rates, err := market.ExchangeRates(asOf, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, err := rates.rate(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// ComputeSnapshot values the whole portfolio at current market prices and
// returns a snapshot dated now. The caller appends it to the series; the
// engine itself does not persist.
//
// Profit is cumulative since the first entry: current value minus the
// aggregate frozen cost basis, plus all dividends received.
func ComputeSnapshot(entries []Entry, dividends []Dividend, market MarketData, homeCurrency string, now Date) (Snapshot, error) {
	initialValue := decimal.Zero
	counts := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		initialValue = initialValue.Add(e.Cost)
		counts[e.Symbol] = counts[e.Symbol].Add(e.Count)
	}

	// Fully closed positions contribute nothing to current value; skipping
	// them also avoids quoting symbols that may no longer be listed.
	open := make([]string, 0, len(counts))
	for symbol, count := range counts {
		if !count.IsZero() {
			open = append(open, symbol)
		}
	}

	currentValue := decimal.Zero
	if len(open) > 0 {
		quotes, err := market.Quotes(open)
		if err != nil {
			return Snapshot{}, err
		}
		rates, err := market.ExchangeRates(Date{}, homeCurrency)
		if err != nil {
			return Snapshot{}, err
		}
		for _, symbol := range open {
			quote, ok := quotes[symbol]
			if !ok {
				return Snapshot{}, fmt.Errorf("%w: no quote for symbol %q", ErrMissingQuote, symbol)
			}
			rate, err := rates.rate(quote.Currency)
			if err != nil {
				return Snapshot{}, err
			}
			currentValue = currentValue.Add(counts[symbol].Mul(quote.Price).Mul(rate))
		}
	}

	profit := currentValue.Sub(initialValue).Add(TotalDividends(dividends))
	return Snapshot{Date: now, Value: currentValue, Profit: profit}, nil
}

// rate returns the conversion multiplier for a currency, failing when the
// table has no rate for it.
func (t RateTable) rate(currency string) (decimal.Decimal, error) {
	rate, ok := t[currency]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for currency %q", ErrInvalidRateTable, currency)
	}
	return rate, nil
}
