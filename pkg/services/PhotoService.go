package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/adampresley/picasa/pkg/models"
	"github.com/go-playground/validator/v10"
)

type PhotoServicer interface {
	Create(ctx context.Context, albumID string, params models.PhotoParams) (models.PhotoEntry, error)
	Update(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error)
	UpdateMetadata(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error)
	Destroy(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error)
	Delete(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error)
}

type PhotoServiceConfig struct {
	Connection  ConnectionServicer
	FileService FileServicer
	Renderer    TemplateRenderer
	Session     Session
}

type PhotoService struct {
	connection  ConnectionServicer
	fileService FileServicer
	renderer    TemplateRenderer
	session     Session
	validate    *validator.Validate
}

func NewPhotoService(config PhotoServiceConfig) PhotoService {
	if config.FileService == nil {
		config.FileService = NewFileService(FileServiceConfig{})
	}

	if config.Renderer == nil {
		config.Renderer = NewTemplateService()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("param")
	})

	return PhotoService{
		connection:  config.Connection,
		fileService: config.FileService,
		renderer:    config.Renderer,
		session:     config.Session,
		validate:    validate,
	}
}

/*
Create uploads a new photo into an album.
POST /data/feed/api/user/{userID}/albumid/{albumID}
*/
func (s PhotoService) Create(ctx context.Context, albumID string, params models.PhotoParams) (models.PhotoEntry, error) {
	var (
		err      error
		headers  http.Header
		body     string
		response *Response
	)

	if albumID == "" {
		return models.PhotoEntry{}, models.NewValidationError("album_id")
	}

	if params, err = s.normalize(params); err != nil {
		return models.PhotoEntry{}, err
	}

	if body, err = s.renderer.Render(KindNewPhoto, params); err != nil {
		return models.PhotoEntry{}, err
	}

	if headers, err = s.authHeader(map[string]string{"Content-Type": MultipartContentType(params.Boundary)}); err != nil {
		return models.PhotoEntry{}, err
	}

	path := s.feedPath(albumID)
	slog.Info("creating photo", "albumID", albumID, "title", params.Title, "contentType", params.ContentType, "bytes", len(params.Binary))

	if response, err = s.connection.Post(ctx, path, headers, body); err != nil {
		return models.PhotoEntry{}, fmt.Errorf("error creating photo in album %s: %w", albumID, err)
	}

	return entryFrom(response)
}

/*
Update replaces the photo's bytes and metadata.
PUT /data/media/api/user/{userID}/albumid/{albumID}/photoid/{photoID}
*/
func (s PhotoService) Update(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error) {
	var (
		err      error
		headers  http.Header
		body     string
		response *Response
	)

	if err = requireIDs(albumID, photoID); err != nil {
		return models.PhotoEntry{}, err
	}

	if params, err = s.normalize(params); err != nil {
		return models.PhotoEntry{}, err
	}

	if body, err = s.renderer.Render(KindNewPhoto, params); err != nil {
		return models.PhotoEntry{}, err
	}

	headers, err = s.authHeader(map[string]string{
		"Content-Type": MultipartContentType(params.Boundary),
		"If-Match":     etagOrDefault(params.ETag),
	})

	if err != nil {
		return models.PhotoEntry{}, err
	}

	path := s.mediaPath(albumID, photoID)
	slog.Info("updating photo", "albumID", albumID, "photoID", photoID, "contentType", params.ContentType, "bytes", len(params.Binary))

	if response, err = s.connection.Put(ctx, path, headers, body); err != nil {
		return models.PhotoEntry{}, fmt.Errorf("error updating photo %s in album %s: %w", photoID, albumID, err)
	}

	return entryFrom(response)
}

/*
UpdateMetadata patches the photo's title and summary without touching the
photo itself. The current entry is fetched first to learn its edit link.
*/
func (s PhotoService) UpdateMetadata(ctx context.Context, albumID, photoID string, params models.PhotoParams) (models.PhotoEntry, error) {
	var (
		err      error
		headers  http.Header
		body     string
		editURL  string
		current  models.PhotoEntry
		response *Response
	)

	if err = requireIDs(albumID, photoID); err != nil {
		return models.PhotoEntry{}, err
	}

	if headers, err = s.authHeader(nil); err != nil {
		return models.PhotoEntry{}, err
	}

	if response, err = s.connection.Get(ctx, s.entryPath(albumID, photoID), headers); err != nil {
		return models.PhotoEntry{}, fmt.Errorf("error retrieving photo %s in album %s: %w", photoID, albumID, err)
	}

	if current, err = entryFrom(response); err != nil {
		return models.PhotoEntry{}, err
	}

	if editURL, err = current.EditLink(); err != nil {
		return models.PhotoEntry{}, err
	}

	if body, err = s.renderer.Render(KindPhoto, params); err != nil {
		return models.PhotoEntry{}, err
	}

	headers, err = s.authHeader(map[string]string{
		"Content-Type": "application/xml",
		"If-Match":     models.DefaultETag,
	})

	if err != nil {
		return models.PhotoEntry{}, err
	}

	slog.Info("updating photo metadata", "albumID", albumID, "photoID", photoID, "editURL", editURL)

	if response, err = s.connection.Patch(ctx, editURL, headers, body); err != nil {
		return models.PhotoEntry{}, fmt.Errorf("error updating metadata of photo %s in album %s: %w", photoID, albumID, err)
	}

	return entryFrom(response)
}

/*
Destroy removes the photo. When options.ETag is set the server only deletes
the photo if it still carries that etag.
DELETE /data/entry/api/user/{userID}/albumid/{albumID}/photoid/{photoID}
*/
func (s PhotoService) Destroy(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error) {
	var (
		err     error
		headers http.Header
	)

	if err = requireIDs(albumID, photoID); err != nil {
		return false, err
	}

	if headers, err = s.authHeader(map[string]string{"If-Match": etagOrDefault(options.ETag)}); err != nil {
		return false, err
	}

	slog.Info("deleting photo", "albumID", albumID, "photoID", photoID)

	if _, err = s.connection.Delete(ctx, s.entryPath(albumID, photoID), headers); err != nil {
		return false, fmt.Errorf("error deleting photo %s in album %s: %w", photoID, albumID, err)
	}

	return true, nil
}

func (s PhotoService) Delete(ctx context.Context, albumID, photoID string, options models.DestroyOptions) (bool, error) {
	return s.Destroy(ctx, albumID, photoID, options)
}

/*
normalize fills the defaults of params. Fields derived from a file are only
looked at when FilePath is given; explicit values always win.
*/
func (s PhotoService) normalize(params models.PhotoParams) (models.PhotoParams, error) {
	var (
		err        error
		file       models.PhotoFile
		validation validator.ValidationErrors
	)

	if params.Boundary == "" {
		params.Boundary = models.DefaultBoundary
	}

	if params.FilePath != "" {
		if file, err = s.fileService.Inspect(params.FilePath); err != nil {
			return params, err
		}

		params.FilePath = ""

		if params.Title == "" {
			params.Title = file.Name
		}

		if len(params.Binary) == 0 {
			params.Binary = file.Binary
		}

		if params.ContentType == "" {
			params.ContentType = file.ContentType
		}
	}

	if err = s.validate.Struct(params); err != nil {
		if errors.As(err, &validation) && len(validation) > 0 {
			return params, models.NewValidationError(validation[0].Field())
		}

		return params, fmt.Errorf("error validating photo parameters: %w", err)
	}

	return params, nil
}

func (s PhotoService) authHeader(extra map[string]string) (http.Header, error) {
	headers, err := s.session.AuthHeader()

	if err != nil {
		return nil, err
	}

	for key, value := range extra {
		headers.Set(key, value)
	}

	return headers, nil
}

func (s PhotoService) feedPath(albumID string) string {
	return fmt.Sprintf("/data/feed/api/user/%s/albumid/%s", s.session.UserID(), albumID)
}

func (s PhotoService) mediaPath(albumID, photoID string) string {
	return fmt.Sprintf("/data/media/api/user/%s/albumid/%s/photoid/%s", s.session.UserID(), albumID, photoID)
}

func (s PhotoService) entryPath(albumID, photoID string) string {
	return fmt.Sprintf("/data/entry/api/user/%s/albumid/%s/photoid/%s", s.session.UserID(), albumID, photoID)
}

func requireIDs(albumID, photoID string) error {
	if albumID == "" {
		return models.NewValidationError("album_id")
	}

	if photoID == "" {
		return models.NewValidationError("photo_id")
	}

	return nil
}

func etagOrDefault(etag string) string {
	if etag == "" {
		return models.DefaultETag
	}

	return etag
}

func entryFrom(response *Response) (models.PhotoEntry, error) {
	entry, err := response.Entry()

	if err != nil {
		return models.PhotoEntry{}, fmt.Errorf("error parsing photo entry: %w", err)
	}

	return entry, nil
}
