package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/etnz/stocksum"
	"github.com/etnz/stocksum/report"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the entries and dividend summaries" }
func (*summaryCmd) Usage() string {
	return `stocksum summary

  Prints the per-symbol position summary (count, cost basis, current market
  value) and the per-symbol dividend summary, valued at current quotes.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	positions, err := stocksum.SummarizeEntries(entries, a.market, a.cfg.HomeCurrency)
	if err != nil {
		return fail(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tCOUNT\tPRICE\tCURRENCY\tCOST BASIS\tMARKET VALUE")
	for _, symbol := range sortedSymbols(positions) {
		p := positions[symbol]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Symbol, p.Count, p.ActualPrice, p.Currency,
			report.FormatMoney(p.CostBasis, a.cfg.HomeCurrency),
			report.FormatMoney(p.ActualBasis, a.cfg.HomeCurrency))
	}
	w.Flush()

	if len(dividends) == 0 {
		return subcommands.ExitSuccess
	}
	divs, err := stocksum.SummarizeDividends(dividends, a.market)
	if err != nil {
		return fail(err)
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tAMOUNT\tCURRENCY\tCONVERTED")
	for _, symbol := range sortedSymbols(divs) {
		d := divs[symbol]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			d.Symbol, d.Value, d.Currency,
			report.FormatMoney(d.ConvertedValue, a.cfg.HomeCurrency))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

func sortedSymbols[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
