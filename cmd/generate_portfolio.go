package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stocksum"
	"github.com/google/subcommands"
)

type generatePortfolioCmd struct{}

func (*generatePortfolioCmd) Name() string { return "generate-portfolio" }
func (*generatePortfolioCmd) Synopsis() string {
	return "value the portfolio at current prices and append a snapshot row"
}
func (*generatePortfolioCmd) Usage() string {
	return `stocksum generate-portfolio

  Computes the current value of the portfolio in home currency and the
  cumulative profit (net of dividends) and appends one row to the portfolio
  series, dated today. Rows are never deduplicated: every run adds one.
`
}

func (*generatePortfolioCmd) SetFlags(*flag.FlagSet) {}

func (c *generatePortfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}
	entries, err := a.store.ReadEntries()
	if err != nil {
		return fail(err)
	}
	dividends, err := a.store.ReadDividends()
	if err != nil {
		return fail(err)
	}

	snapshot, err := stocksum.ComputeSnapshot(entries, dividends, a.market, a.cfg.HomeCurrency, stocksum.Today())
	if err != nil {
		return fail(err)
	}
	if err := a.store.AppendSnapshot(snapshot); err != nil {
		return fail(err)
	}
	if err := a.push(ctx); err != nil {
		return fail(err)
	}
	a.log.Info().
		Str("value", snapshot.Value.String()+" "+a.cfg.HomeCurrency).
		Str("profit", snapshot.Profit.String()+" "+a.cfg.HomeCurrency).
		Msg("portfolio snapshot appended")
	return subcommands.ExitSuccess
}
