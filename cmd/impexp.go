package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

// import-data and export-data copy ledger files in and out of the data
// directory wholesale; the program never edits rows in place, so replacing a
// file is the supported way to correct history.

type importDataCmd struct {
	entries   string
	dividends string
	portfolio string
}

func (*importDataCmd) Name() string     { return "import-data" }
func (*importDataCmd) Synopsis() string { return "replace ledger files with custom ones" }
func (*importDataCmd) Usage() string {
	return `stocksum import-data [-e <file>] [-D <file>] [-p <file>]

  Replaces the selected ledger files with the given ones and pushes the
  result to the cloud, if one is configured.
`
}

func (c *importDataCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entries, "e", "", "Path to a custom entries file.")
	f.StringVar(&c.dividends, "D", "", "Path to a custom dividends file.")
	f.StringVar(&c.portfolio, "p", "", "Path to a custom portfolio file.")
}

func (c *importDataCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.entries == "" && c.dividends == "" && c.portfolio == "" {
		fmt.Fprintln(flag.CommandLine.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}
	imports := []struct{ from, to string }{
		{c.entries, a.store.EntriesPath()},
		{c.dividends, a.store.DividendsPath()},
		{c.portfolio, a.store.SnapshotsPath()},
	}
	for _, imp := range imports {
		if imp.from == "" {
			continue
		}
		if err := copyFile(imp.from, imp.to); err != nil {
			return fail(err)
		}
		a.log.Info().Str("from", imp.from).Str("to", imp.to).Msg("imported ledger file")
	}
	if err := a.push(ctx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type exportDataCmd struct {
	directory string
}

func (*exportDataCmd) Name() string     { return "export-data" }
func (*exportDataCmd) Synopsis() string { return "copy all ledger files to a directory" }
func (*exportDataCmd) Usage() string {
	return `stocksum export-data -d <directory>

  Copies the three ledger files into the given directory, creating it if
  needed.
`
}

func (c *exportDataCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.directory, "d", "", "Directory for the exported files.")
}

func (c *exportDataCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.directory == "" {
		fmt.Fprintln(flag.CommandLine.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx)
	if err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(c.directory, 0o755); err != nil {
		return fail(fmt.Errorf("creating %q: %w", c.directory, err))
	}
	for _, path := range a.store.Paths() {
		target := filepath.Join(c.directory, filepath.Base(path))
		if err := copyFile(path, target); err != nil {
			return fail(err)
		}
		a.log.Info().Str("to", target).Msg("exported ledger file")
	}
	return subcommands.ExitSuccess
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("opening %q: %w", from, err)
	}
	defer src.Close()
	dst, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("creating %q: %w", to, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %q to %q: %w", from, to, err)
	}
	return nil
}
