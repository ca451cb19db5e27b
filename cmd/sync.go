package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stocksum"
	"github.com/etnz/stocksum/cloud"
	"github.com/google/subcommands"
)

type syncCmd struct {
	up bool
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "mirror the ledger files to or from the cloud" }
func (*syncCmd) Usage() string {
	return `stocksum sync [-up]

  Pulls the ledger files from the configured cloud, or pushes the local ones
  up with -up. Last writer wins; there is no merge.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.up, "up", false, "Push local files to the cloud instead of pulling.")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Not using newApp here: its Pull would defeat an explicit -up.
	log := newLogger()
	cfg := loadConfig()
	if cfg.Cloud.Type == "" || cfg.Cloud.Type == cloud.TypeNone {
		return fail(fmt.Errorf("no cloud configured; run save-cloud first"))
	}
	store := stocksum.NewStore(cfg.DataDir)
	if err := store.Init(false); err != nil {
		return fail(err)
	}
	syncer, err := cloud.New(ctx, cfg.Cloud, log)
	if err != nil {
		return fail(err)
	}
	if c.up {
		if err := syncer.Push(ctx, store.Paths()); err != nil {
			return fail(err)
		}
		log.Info().Msg("ledgers pushed to the cloud")
		return subcommands.ExitSuccess
	}
	if err := syncer.Pull(ctx, store.Paths()); err != nil {
		return fail(err)
	}
	log.Info().Msg("ledgers pulled from the cloud")
	return subcommands.ExitSuccess
}
