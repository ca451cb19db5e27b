package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/stocksum/cloud"
	"github.com/google/subcommands"
)

type saveTokenCmd struct{}

func (*saveTokenCmd) Name() string     { return "save-token" }
func (*saveTokenCmd) Synopsis() string { return "save the market-data API token" }
func (*saveTokenCmd) Usage() string {
	return `stocksum save-token <token>

  Saves the RapidAPI token to the settings file in the data directory.
`
}

func (*saveTokenCmd) SetFlags(*flag.FlagSet) {}

func (c *saveTokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(flag.CommandLine.Output(), c.Usage())
		return subcommands.ExitUsageError
	}
	if err := saveSettings(map[string]string{"STOCKSUM_TOKEN": f.Arg(0)}); err != nil {
		return fail(err)
	}
	log := newLogger()
	log.Info().Str("path", settingsPath()).Msg("token saved")
	return subcommands.ExitSuccess
}

type saveCloudCmd struct {
	cloudType string
	bucket    string
	prefix    string
}

func (*saveCloudCmd) Name() string     { return "save-cloud" }
func (*saveCloudCmd) Synopsis() string { return "save the cloud sync settings" }
func (*saveCloudCmd) Usage() string {
	return `stocksum save-cloud -type <s3|none> [-bucket <name>] [-prefix <prefix>]

  Saves the cloud sync settings. With type s3, every command pulls the
  ledgers from the bucket first and mutating commands push them back.
`
}

func (c *saveCloudCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cloudType, "type", cloud.TypeNone, "Cloud type: s3 or none.")
	f.StringVar(&c.bucket, "bucket", "", "S3 bucket holding the mirrored ledgers.")
	f.StringVar(&c.prefix, "prefix", "", "Optional key prefix inside the bucket.")
}

func (c *saveCloudCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.cloudType != cloud.TypeNone && c.cloudType != cloud.TypeS3 {
		return fail(fmt.Errorf("unknown cloud type %q", c.cloudType))
	}
	if c.cloudType == cloud.TypeS3 && c.bucket == "" {
		return fail(fmt.Errorf("cloud type s3 requires -bucket"))
	}
	err := saveSettings(map[string]string{
		"STOCKSUM_CLOUD":  c.cloudType,
		"STOCKSUM_BUCKET": c.bucket,
		"STOCKSUM_PREFIX": c.prefix,
	})
	if err != nil {
		return fail(err)
	}
	log := newLogger()
	log.Info().Str("path", settingsPath()).Msg("cloud settings saved")
	return subcommands.ExitSuccess
}
