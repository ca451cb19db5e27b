package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stocksum"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addEntryCmd struct {
	date   string
	symbol string
	count  string
	price  string
}

func (*addEntryCmd) Name() string     { return "add-entry" }
func (*addEntryCmd) Synopsis() string { return "record a stock purchase (or sale) in the entries ledger" }
func (*addEntryCmd) Usage() string {
	return `stocksum add-entry -d <DD/MM/YYYY> -s <symbol> -c <count> -p <price>

  Appends one entry to the entries ledger. The cost in home currency is
  computed with the exchange rate valid on the entry date and frozen; it is
  never recomputed later. A negative count records a sale.
`
}

func (c *addEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the entry, as DD/MM/YYYY.")
	f.StringVar(&c.symbol, "s", "", "Symbol of the stock.")
	f.StringVar(&c.count, "c", "", "Count of the stocks bought (negative for a sale).")
	f.StringVar(&c.price, "p", "", "Unit price, in the stock's native currency.")
}

func (c *addEntryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.date == "" || c.symbol == "" || c.count == "" || c.price == "" {
		fmt.Fprintln(flag.CommandLine.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	date, err := stocksum.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	count, err := decimal.NewFromString(c.count)
	if err != nil {
		return fail(fmt.Errorf("count %q is not a number", c.count))
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return fail(fmt.Errorf("price %q is not a number", c.price))
	}

	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}

	// One quote lookup both validates the symbol and yields its native
	// currency for the frozen conversion.
	quotes, err := a.market.Quotes([]string{c.symbol})
	if err != nil {
		return fail(err)
	}
	quote, ok := quotes[c.symbol]
	if !ok {
		return fail(fmt.Errorf("%w: no quote for symbol %q", stocksum.ErrMissingQuote, c.symbol))
	}

	cost, err := stocksum.Convert(a.market, date, quote.Currency, a.cfg.HomeCurrency, count.Mul(price))
	if err != nil {
		return fail(err)
	}

	entry := stocksum.Entry{Date: date, Symbol: c.symbol, Count: count, UnitPrice: price, Cost: cost}
	if err := a.store.AppendEntry(entry); err != nil {
		return fail(err)
	}
	if err := a.push(ctx); err != nil {
		return fail(err)
	}
	a.log.Info().
		Str("symbol", c.symbol).
		Str("count", count.String()).
		Str("cost", cost.String()+" "+a.cfg.HomeCurrency).
		Msg("entry added")
	return subcommands.ExitSuccess
}
