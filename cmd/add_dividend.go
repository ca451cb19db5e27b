package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stocksum"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addDividendCmd struct {
	date   string
	symbol string
	amount string
}

func (*addDividendCmd) Name() string     { return "add-dividend" }
func (*addDividendCmd) Synopsis() string { return "record a dividend receipt in the dividends ledger" }
func (*addDividendCmd) Usage() string {
	return `stocksum add-dividend -d <DD/MM/YYYY> -s <symbol> -a <amount>

  Appends one dividend to the dividends ledger. The amount is in the stock's
  native currency; the converted amount is frozen with the exchange rate
  valid on the dividend date.
`
}

func (c *addDividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the dividend, as DD/MM/YYYY.")
	f.StringVar(&c.symbol, "s", "", "Symbol of the stock paying the dividend.")
	f.StringVar(&c.amount, "a", "", "Dividend amount, in the stock's native currency.")
}

func (c *addDividendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.date == "" || c.symbol == "" || c.amount == "" {
		fmt.Fprintln(flag.CommandLine.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	date, err := stocksum.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return fail(fmt.Errorf("amount %q is not a number", c.amount))
	}

	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}

	quotes, err := a.market.Quotes([]string{c.symbol})
	if err != nil {
		return fail(err)
	}
	quote, ok := quotes[c.symbol]
	if !ok {
		return fail(fmt.Errorf("%w: no quote for symbol %q", stocksum.ErrMissingQuote, c.symbol))
	}

	converted, err := stocksum.Convert(a.market, date, quote.Currency, a.cfg.HomeCurrency, amount)
	if err != nil {
		return fail(err)
	}

	dividend := stocksum.Dividend{Date: date, Symbol: c.symbol, Amount: amount, ConvertedAmount: converted}
	if err := a.store.AppendDividend(dividend); err != nil {
		return fail(err)
	}
	if err := a.push(ctx); err != nil {
		return fail(err)
	}
	a.log.Info().
		Str("symbol", c.symbol).
		Str("amount", amount.String()+" "+quote.Currency).
		Str("converted", converted.String()+" "+a.cfg.HomeCurrency).
		Msg("dividend added")
	return subcommands.ExitSuccess
}
