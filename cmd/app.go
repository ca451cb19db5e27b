// Package cmd implements the CLI application to manage the portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/stocksum"
	"github.com/etnz/stocksum/cloud"
	"github.com/etnz/stocksum/rapid"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addEntryCmd{}, "ledger")
	c.Register(&addDividendCmd{}, "ledger")
	c.Register(&importDataCmd{}, "ledger")
	c.Register(&exportDataCmd{}, "ledger")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&generatePortfolioCmd{}, "reports")
	c.Register(&generateHTMLCmd{}, "reports")

	c.Register(&saveTokenCmd{}, "settings")
	c.Register(&saveCloudCmd{}, "settings")
	c.Register(&syncCmd{}, "settings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", defaultDataDir(), "Directory holding the ledger files and settings")

func defaultDataDir() string {
	if dir := os.Getenv("STOCKSUM_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stocksum"
	}
	return filepath.Join(home, ".stocksum")
}

// settingsPath is the env file holding the API token and cloud settings.
// It lives next to the ledgers but is never mirrored to the cloud.
func settingsPath() string { return filepath.Join(*dataDir, "config.env") }

// Config is the explicit configuration of one command run. It is loaded once
// here; nothing below the cmd package reads ambient state.
type Config struct {
	DataDir      string
	HomeCurrency string
	APIToken     string
	Cloud        cloud.Config
}

// loadConfig merges the settings env file (if any) with the process
// environment, the environment winning.
func loadConfig() Config {
	settings, err := godotenv.Read(settingsPath())
	if err != nil {
		settings = map[string]string{}
	}
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := settings[key]; v != "" {
			return v
		}
		return fallback
	}
	return Config{
		DataDir:      *dataDir,
		HomeCurrency: get("STOCKSUM_CURRENCY", "CZK"),
		APIToken:     get("STOCKSUM_TOKEN", ""),
		Cloud: cloud.Config{
			Type:   get("STOCKSUM_CLOUD", cloud.TypeNone),
			Bucket: get("STOCKSUM_BUCKET", ""),
			Prefix: get("STOCKSUM_PREFIX", ""),
		},
	}
}

// saveSettings merges the given keys into the settings env file.
func saveSettings(vars map[string]string) error {
	settings, err := godotenv.Read(settingsPath())
	if err != nil {
		settings = map[string]string{}
	}
	for k, v := range vars {
		settings[k] = v
	}
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	return godotenv.Write(settings, settingsPath())
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(os.Getenv("STOCKSUM_DEBUG")); err == nil && l != zerolog.NoLevel {
		level = l
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// app bundles what every command needs: configuration, the ledger store, the
// market-data client and the cloud syncer.
type app struct {
	cfg    Config
	store  *stocksum.Store
	market stocksum.MarketData
	syncer cloud.Syncer
	log    zerolog.Logger
}

// newApp initializes the data files if needed, then pulls the remote copies
// so every command starts from the shared state.
func newApp(ctx context.Context) (*app, error) {
	log := newLogger()
	cfg := loadConfig()

	store := stocksum.NewStore(cfg.DataDir)
	if err := store.Init(false); err != nil {
		return nil, err
	}
	syncer, err := cloud.New(ctx, cfg.Cloud, log)
	if err != nil {
		return nil, err
	}
	if err := syncer.Pull(ctx, store.Paths()); err != nil {
		return nil, fmt.Errorf("pulling ledgers from the cloud: %w", err)
	}
	return &app{
		cfg:    cfg,
		store:  store,
		market: rapid.New(cfg.APIToken),
		syncer: syncer,
		log:    log,
	}, nil
}

// push mirrors the ledgers back to the cloud after a mutating command.
func (a *app) push(ctx context.Context) error {
	if err := a.syncer.Push(ctx, a.store.Paths()); err != nil {
		return fmt.Errorf("pushing ledgers to the cloud: %w", err)
	}
	return nil
}

// fail reports an error and returns the non-zero exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
