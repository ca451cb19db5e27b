package cloud

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := zerolog.Nop()

	t.Run("none", func(t *testing.T) {
		syncer, err := New(context.Background(), Config{Type: TypeNone}, log)
		require.NoError(t, err)
		assert.NoError(t, syncer.Pull(context.Background(), []string{"whatever"}))
		assert.NoError(t, syncer.Push(context.Background(), []string{"whatever"}))
	})

	t.Run("empty type means none", func(t *testing.T) {
		syncer, err := New(context.Background(), Config{}, log)
		require.NoError(t, err)
		assert.NoError(t, syncer.Pull(context.Background(), nil))
	})

	t.Run("s3 needs a bucket", func(t *testing.T) {
		_, err := New(context.Background(), Config{Type: TypeS3}, log)
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New(context.Background(), Config{Type: "ftp"}, log)
		assert.ErrorContains(t, err, "unknown cloud type")
	})
}

// fakeDownloader serves canned content per key, or a NoSuchKey error for
// unknown ones.
type fakeDownloader struct {
	objects map[string]string
	keys    []string
}

func (f *fakeDownloader) Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*manager.Downloader)) (int64, error) {
	f.keys = append(f.keys, *input.Key)
	content, ok := f.objects[*input.Key]
	if !ok {
		return 0, &types.NoSuchKey{}
	}
	n, err := w.WriteAt([]byte(content), 0)
	return int64(n), err
}

// fakeUploader records every uploaded object.
type fakeUploader struct {
	uploaded map[string]string
	bucket   string
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[*input.Key] = string(body)
	f.bucket = *input.Bucket
	return &manager.UploadOutput{}, nil
}

func TestPull(t *testing.T) {
	dir := t.TempDir()
	entries := filepath.Join(dir, "entries.csv")
	dividends := filepath.Join(dir, "dividends.csv")
	require.NoError(t, os.WriteFile(entries, []byte("local entries\n"), 0o644))
	require.NoError(t, os.WriteFile(dividends, []byte("local dividends\n"), 0o644))

	downloader := &fakeDownloader{objects: map[string]string{
		"pf/entries.csv": "remote entries\n",
	}}
	syncer := &s3Syncer{bucket: "b", prefix: "pf", downloader: downloader, log: zerolog.Nop()}

	require.NoError(t, syncer.Pull(context.Background(), []string{entries, dividends}))

	got, err := os.ReadFile(entries)
	require.NoError(t, err)
	assert.Equal(t, "remote entries\n", string(got), "remote copy must replace the local file")

	got, err = os.ReadFile(dividends)
	require.NoError(t, err)
	assert.Equal(t, "local dividends\n", string(got), "a missing remote object keeps the local file")

	assert.Equal(t, []string{"pf/entries.csv", "pf/dividends.csv"}, downloader.keys)
}

func TestPush(t *testing.T) {
	dir := t.TempDir()
	entries := filepath.Join(dir, "entries.csv")
	require.NoError(t, os.WriteFile(entries, []byte("DATE STOCK COUNT PRICE COST\n"), 0o644))

	uploader := &fakeUploader{}
	syncer := &s3Syncer{bucket: "b", prefix: "pf", uploader: uploader, log: zerolog.Nop()}

	require.NoError(t, syncer.Push(context.Background(), []string{entries}))
	assert.Equal(t, "b", uploader.bucket)
	assert.Equal(t, "DATE STOCK COUNT PRICE COST\n", uploader.uploaded["pf/entries.csv"])
}

func TestPushMissingFile(t *testing.T) {
	syncer := &s3Syncer{bucket: "b", uploader: &fakeUploader{}, log: zerolog.Nop()}
	err := syncer.Push(context.Background(), []string{filepath.Join(t.TempDir(), "absent.csv")})
	assert.Error(t, err)
}
