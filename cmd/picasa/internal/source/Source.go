package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/getoptions"
	"github.com/adampresley/picasa/pkg/models"
	"github.com/adampresley/picasa/pkg/services"
)

/*
ObjectFetcher opens an object stored in a bucket. The caller closes the
returned reader.
*/
type ObjectFetcher func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

func NewS3ObjectFetcher(client s3.S3Client) ObjectFetcher {
	return func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		object, err := client.Get(bucket, key, getoptions.WithContext(ctx))

		if err != nil {
			return nil, fmt.Errorf("error getting object '%s' from bucket '%s': %w", key, bucket, err)
		}

		return object.Body, nil
	}
}

type ResolverConfig struct {
	FileService  services.FileServicer
	ImageService services.ImageServicer
	MaxSize      uint

	// NewFetcher is only called when a photo is read from S3.
	NewFetcher func() (ObjectFetcher, error)
}

/*
Resolver turns the --file argument into photo parameters. Local files are
handed to the photo service as a file path unless they need resizing;
s3:// URLs are downloaded first.
*/
type Resolver struct {
	fileService  services.FileServicer
	imageService services.ImageServicer
	maxSize      uint
	newFetcher   func() (ObjectFetcher, error)
}

func NewResolver(config ResolverConfig) Resolver {
	return Resolver{
		fileService:  config.FileService,
		imageService: config.ImageService,
		maxSize:      config.MaxSize,
		newFetcher:   config.NewFetcher,
	}
}

func (r Resolver) Resolve(ctx context.Context, file string, params models.PhotoParams) (models.PhotoParams, error) {
	var (
		err   error
		photo models.PhotoFile
	)

	switch {
	case file == "":
		return params, nil

	case IsS3URL(file):
		if photo, err = r.fetch(ctx, file); err != nil {
			return params, err
		}

	case r.maxSize == 0:
		params.FilePath = file
		return params, nil

	default:
		if photo, err = r.fileService.Inspect(file); err != nil {
			return params, err
		}
	}

	if params.Title == "" {
		params.Title = photo.Name
	}

	if params.ContentType == "" {
		params.ContentType = photo.ContentType
	}

	if len(params.Binary) == 0 {
		params.Binary = photo.Binary
	}

	if r.maxSize > 0 {
		originalSize := len(params.Binary)

		if params.Binary, err = r.imageService.Resize(params.Binary, params.ContentType, r.maxSize); err != nil {
			return params, fmt.Errorf("error resizing '%s': %w", file, err)
		}

		slog.Debug("resized photo", "file", file, "maxSize", r.maxSize, "originalBytes", originalSize, "bytes", len(params.Binary))
	}

	return params, nil
}

func (r Resolver) fetch(ctx context.Context, rawURL string) (models.PhotoFile, error) {
	var (
		err     error
		bucket  string
		key     string
		fetcher ObjectFetcher
		body    io.ReadCloser
		binary  []byte
	)

	if bucket, key, err = ParseS3URL(rawURL); err != nil {
		return models.PhotoFile{}, err
	}

	if r.newFetcher == nil {
		return models.PhotoFile{}, fmt.Errorf("no S3 client configured to read '%s'", rawURL)
	}

	if fetcher, err = r.newFetcher(); err != nil {
		return models.PhotoFile{}, err
	}

	if body, err = fetcher(ctx, bucket, key); err != nil {
		return models.PhotoFile{}, err
	}

	defer body.Close()

	if binary, err = io.ReadAll(body); err != nil {
		return models.PhotoFile{}, fmt.Errorf("error reading '%s': %w", rawURL, err)
	}

	return models.PhotoFile{
		Name:        filepath.Base(key),
		Binary:      binary,
		ContentType: services.ContentTypeFor(key, binary),
	}, nil
}

func IsS3URL(value string) bool {
	return strings.HasPrefix(value, "s3://")
}

// ParseS3URL splits s3://bucket/some/key into its bucket and key.
func ParseS3URL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)

	if err != nil {
		return "", "", fmt.Errorf("invalid S3 URL '%s': %w", rawURL, err)
	}

	key := strings.TrimPrefix(u.Path, "/")

	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URL '%s': expected s3://bucket/key", rawURL)
	}

	return u.Host, key, nil
}
