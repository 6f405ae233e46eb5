package source_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"testing"

	"github.com/adampresley/picasa/cmd/picasa/internal/source"
	"github.com/adampresley/picasa/pkg/models"
	"github.com/adampresley/picasa/pkg/services"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

func newResolver(fs afero.Fs, maxSize uint, fetcher source.ObjectFetcher) source.Resolver {
	config := source.ResolverConfig{
		FileService:  services.NewFileService(services.FileServiceConfig{Fs: fs}),
		ImageService: services.NewImageService(),
		MaxSize:      maxSize,
	}

	if fetcher != nil {
		config.NewFetcher = func() (source.ObjectFetcher, error) {
			return fetcher, nil
		}
	}

	return source.NewResolver(config)
}

func TestResolveLocalFileIsPassedAsPath(t *testing.T) {
	resolver := newResolver(afero.NewMemMapFs(), 0, nil)

	params, err := resolver.Resolve(context.Background(), "/photos/me.jpg", models.PhotoParams{Title: "Me"})

	require.NoError(t, err)
	assert.Equal(t, "/photos/me.jpg", params.FilePath)
	assert.Equal(t, "Me", params.Title)
	assert.Empty(t, params.Binary)
}

func TestResolveNoFile(t *testing.T) {
	resolver := newResolver(afero.NewMemMapFs(), 0, nil)

	params, err := resolver.Resolve(context.Background(), "", models.PhotoParams{Title: "Me"})

	require.NoError(t, err)
	assert.Equal(t, models.PhotoParams{Title: "Me"}, params)
}

func TestResolveLocalFileWithResize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/photos/wide.jpg", jpegBytes(t, 800, 400), 0o644))
	resolver := newResolver(fs, 200, nil)

	params, err := resolver.Resolve(context.Background(), "/photos/wide.jpg", models.PhotoParams{})
	require.NoError(t, err)

	assert.Empty(t, params.FilePath)
	assert.Equal(t, "wide.jpg", params.Title)
	assert.Equal(t, "image/jpeg", params.ContentType)

	config, _, err := image.DecodeConfig(bytes.NewReader(params.Binary))
	require.NoError(t, err)
	assert.Equal(t, 200, config.Width)
	assert.Equal(t, 100, config.Height)
}

func TestResolveS3Object(t *testing.T) {
	var gotBucket, gotKey string
	photo := jpegBytes(t, 10, 10)

	fetcher := func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		gotBucket, gotKey = bucket, key
		return io.NopCloser(bytes.NewReader(photo)), nil
	}

	resolver := newResolver(afero.NewMemMapFs(), 0, fetcher)

	params, err := resolver.Resolve(context.Background(), "s3://my-photos/clients/7/originals/IMG_0001.jpg", models.PhotoParams{Summary: "first"})
	require.NoError(t, err)

	assert.Equal(t, "my-photos", gotBucket)
	assert.Equal(t, "clients/7/originals/IMG_0001.jpg", gotKey)
	assert.Equal(t, "IMG_0001.jpg", params.Title)
	assert.Equal(t, "first", params.Summary)
	assert.Equal(t, "image/jpeg", params.ContentType)
	assert.Equal(t, photo, params.Binary)
	assert.Empty(t, params.FilePath)
}

func TestResolveS3FetchError(t *testing.T) {
	fetcher := func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		return nil, errors.New("access denied")
	}

	resolver := newResolver(afero.NewMemMapFs(), 0, fetcher)

	_, err := resolver.Resolve(context.Background(), "s3://bucket/key.jpg", models.PhotoParams{})

	assert.ErrorContains(t, err, "access denied")
}

func TestResolveS3WithoutClient(t *testing.T) {
	resolver := newResolver(afero.NewMemMapFs(), 0, nil)

	_, err := resolver.Resolve(context.Background(), "s3://bucket/key.jpg", models.PhotoParams{})

	assert.ErrorContains(t, err, "no S3 client configured")
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := source.ParseS3URL("s3://bucket/a/b/c.png")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "a/b/c.png", key)

	for _, invalid := range []string{"s3://bucket", "s3:///key.png", "http://bucket/key.png"} {
		_, _, err = source.ParseS3URL(invalid)
		assert.Error(t, err, invalid)
	}
}
