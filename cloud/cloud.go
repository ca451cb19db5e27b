// Package cloud mirrors the ledger files to a remote store so several
// machines can share one portfolio.
//
// Synchronization is deliberately simple: pull before a command, push after a
// mutating one, last writer wins. There is no conflict detection, no
// versioning and no merge; the aggregation engine is unaware this package
// exists.
package cloud

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Supported cloud types.
const (
	TypeNone = "none"
	TypeS3   = "s3"
)

// Config selects and parameterizes the remote store. It is built once by the
// CLI layer; nothing in this package reads ambient state.
type Config struct {
	Type   string // "s3" or "none"
	Bucket string // S3 bucket holding the mirrored files
	Prefix string // optional key prefix inside the bucket
}

// Syncer mirrors local files to and from the remote store.
type Syncer interface {
	// Pull downloads the remote copy of each file over the local one. A file
	// absent remotely is skipped with a warning so a fresh machine can start
	// from its local templates.
	Pull(ctx context.Context, paths []string) error

	// Push uploads each local file, overwriting the remote copy.
	Push(ctx context.Context, paths []string) error
}

// New builds the Syncer selected by cfg. With TypeNone (or an empty type) it
// returns a disabled syncer so callers need no nil checks.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (Syncer, error) {
	switch cfg.Type {
	case "", TypeNone:
		return disabled{log: log}, nil
	case TypeS3:
		if cfg.Bucket == "" {
			return nil, errors.New("cloud sync of type s3 requires a bucket name; set one or turn the cloud off")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS configuration: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return &s3Syncer{
			bucket:     cfg.Bucket,
			prefix:     cfg.Prefix,
			uploader:   manager.NewUploader(client),
			downloader: manager.NewDownloader(client),
			log:        log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown cloud type %q", cfg.Type)
	}
}

// disabled is the no-op syncer used when no cloud is configured.
type disabled struct {
	log zerolog.Logger
}

func (d disabled) Pull(context.Context, []string) error {
	d.log.Debug().Msg("cloud not set, nothing to pull, continuing with local data")
	return nil
}

func (d disabled) Push(context.Context, []string) error {
	d.log.Debug().Msg("cloud not set, nothing to push")
	return nil
}
