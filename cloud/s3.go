package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// uploaderAPI and downloaderAPI are the slices of the transfer manager the
// syncer needs; tests substitute fakes.
type uploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type downloaderAPI interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*manager.Downloader)) (int64, error)
}

// s3Syncer mirrors files into one S3 bucket, keyed by file basename under an
// optional prefix.
type s3Syncer struct {
	bucket     string
	prefix     string
	uploader   uploaderAPI
	downloader downloaderAPI
	log        zerolog.Logger
}

func (s *s3Syncer) key(localPath string) string {
	return path.Join(s.prefix, filepath.Base(localPath))
}

func (s *s3Syncer) Pull(ctx context.Context, paths []string) error {
	for _, p := range paths {
		key := s.key(p)
		buf := manager.NewWriteAtBuffer(nil)
		_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var noKey *types.NoSuchKey
			if errors.As(err, &noKey) {
				s.log.Warn().Str("key", key).Msg("no remote copy yet, keeping local file")
				continue
			}
			return fmt.Errorf("downloading s3://%s/%s: %w", s.bucket, key, err)
		}
		if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", p, err)
		}
		s.log.Debug().Str("key", key).Str("path", p).Msg("pulled file from cloud")
	}
	return nil
}

func (s *s3Syncer) Push(ctx context.Context, paths []string) error {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening %q: %w", p, err)
		}
		key := s.key(p)
		_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("uploading s3://%s/%s: %w", s.bucket, key, err)
		}
		s.log.Debug().Str("key", key).Str("path", p).Msg("pushed file to cloud")
	}
	return nil
}
