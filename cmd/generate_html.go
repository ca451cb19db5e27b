package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/stocksum"
	"github.com/etnz/stocksum/report"
	"github.com/google/subcommands"
)

type generateHTMLCmd struct {
	output string
}

func (*generateHTMLCmd) Name() string     { return "generate-html" }
func (*generateHTMLCmd) Synopsis() string { return "render the HTML summary page from all current data" }
func (*generateHTMLCmd) Usage() string {
	return `stocksum generate-html [-o <file>]

  Renders the summary page: the per-symbol position and dividend tables plus
  a chart of the portfolio series. Defaults to index.html in the data
  directory.
`
}

func (c *generateHTMLCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to <data-dir>/index.html.")
}

func (c *generateHTMLCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	series, err := a.store.ReadSnapshots()
	if err != nil {
		return fail(err)
	}

	positions, err := stocksum.SummarizeEntries(entries, a.market, a.cfg.HomeCurrency)
	if err != nil {
		return fail(err)
	}
	divs, err := stocksum.SummarizeDividends(dividends, a.market)
	if err != nil {
		return fail(err)
	}

	output := c.output
	if output == "" {
		output = filepath.Join(a.cfg.DataDir, "index.html")
	}
	out, err := os.Create(output)
	if err != nil {
		return fail(fmt.Errorf("creating %q: %w", output, err))
	}
	defer out.Close()

	data := report.NewData(stocksum.Today(), a.cfg.HomeCurrency, positions, divs, series)
	if err := report.Render(out, data); err != nil {
		return fail(err)
	}
	a.log.Info().Str("path", output).Msg("report generated")
	return subcommands.ExitSuccess
}
