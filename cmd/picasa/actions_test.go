package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/adampresley/picasa/cmd/picasa/internal/configuration"
	"github.com/adampresley/picasa/cmd/picasa/internal/source"
	"github.com/adampresley/picasa/pkg/models"
	"github.com/adampresley/picasa/pkg/services"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotoService struct {
	method  string
	albumID string
	photoID string
	params  models.PhotoParams
	options models.DestroyOptions
	entry   models.PhotoEntry
}

func (f *fakePhotoService) Create(ctx context.Context, albumID string, params models.PhotoParams) (models.PhotoEntry, error) {
	f.method, f.albumID, f.params = "create", albumID, params
	return f.entry, nil
}

func (f *fakePhotoService) Update(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error) {
	f.method, f.albumID, f.photoID, f.params = "update", albumID, photoID, params
	return f.entry, nil
}

func (f *fakePhotoService) UpdateMetadata(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error) {
	f.method, f.albumID, f.photoID, f.params = "update-metadata", albumID, photoID, params
	return f.entry, nil
}

func (f *fakePhotoService) Destroy(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error) {
	f.method, f.albumID, f.photoID, f.options = "destroy", albumID, photoID, options
	return true, nil
}

func (f *fakePhotoService) Delete(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error) {
	return f.Destroy(ctx, albumID, photoID, options)
}

func testResolver() source.Resolver {
	return source.NewResolver(source.ResolverConfig{
		FileService:  services.NewFileService(services.FileServiceConfig{Fs: afero.NewMemMapFs()}),
		ImageService: services.NewImageService(),
	})
}

func TestRunActionCreate(t *testing.T) {
	out := &bytes.Buffer{}
	photoService := &fakePhotoService{
		entry: models.PhotoEntry{
			PhotoID: "5",
			AlbumID: "42",
			Title:   "Sunset",
			Links:   []models.Link{{Rel: "edit", Href: "https://example.com/edit"}},
		},
	}

	config := configuration.Config{Action: "create", AlbumID: "42", File: "/photos/sunset.jpg", Summary: "evening"}

	err := runAction(context.Background(), out, config, photoService, testResolver())
	require.NoError(t, err)

	assert.Equal(t, "create", photoService.method)
	assert.Equal(t, "42", photoService.albumID)
	assert.Equal(t, "/photos/sunset.jpg", photoService.params.FilePath)
	assert.Equal(t, "evening", photoService.params.Summary)

	assert.Contains(t, out.String(), "id:         5")
	assert.Contains(t, out.String(), "title:      Sunset")
	assert.Contains(t, out.String(), "edit:       https://example.com/edit")
}

func TestRunActionUpdateMetadataIgnoresFile(t *testing.T) {
	photoService := &fakePhotoService{}
	config := configuration.Config{Action: "update-metadata", AlbumID: "42", PhotoID: "5", File: "/photos/x.jpg", Title: "New"}

	err := runAction(context.Background(), &bytes.Buffer{}, config, photoService, testResolver())
	require.NoError(t, err)

	assert.Equal(t, "update-metadata", photoService.method)
	assert.Equal(t, "5", photoService.photoID)
	assert.Equal(t, "New", photoService.params.Title)
	assert.Empty(t, photoService.params.FilePath)
}

func TestRunActionDelete(t *testing.T) {
	out := &bytes.Buffer{}
	photoService := &fakePhotoService{}
	config := configuration.Config{Action: "delete", AlbumID: "42", PhotoID: "5", ETag: `"abc"`}

	err := runAction(context.Background(), out, config, photoService, testResolver())
	require.NoError(t, err)

	assert.Equal(t, "destroy", photoService.method)
	assert.Equal(t, `"abc"`, photoService.options.ETag)
	assert.Equal(t, "deleted photo 5 from album 42\n", out.String())
}

func TestRunActionUnknown(t *testing.T) {
	err := runAction(context.Background(), &bytes.Buffer{}, configuration.Config{Action: "rotate"}, &fakePhotoService{}, testResolver())

	assert.ErrorContains(t, err, "unknown action 'rotate'")
}
