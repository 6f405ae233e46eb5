package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/picasa/pkg/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

var (
	// SupportedContentTypes are the media types the photo feed accepts.
	SupportedContentTypes = []string{
		"image/bmp",
		"image/gif",
		"image/jpeg",
		"image/png",
		"video/3gpp",
		"video/avi",
		"video/mp4",
		"video/mpeg",
		"video/quicktime",
		"video/x-ms-asf",
		"video/x-ms-wmv",
		"video/x-msvideo",
	}

	contentTypesByExtension = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".png":  "image/png",
		".bmp":  "image/bmp",
		".3gp":  "video/3gpp",
		".avi":  "video/avi",
		".mov":  "video/quicktime",
		".mp4":  "video/mp4",
		".m4v":  "video/mp4",
		".mpeg": "video/mpeg",
		".mpg":  "video/mpeg",
		".asf":  "video/x-ms-asf",
		".wmv":  "video/x-ms-wmv",
	}
)

type FileServicer interface {
	Inspect(path string) (models.PhotoFile, error)
}

type FileServiceConfig struct {
	Fs afero.Fs
}

type FileService struct {
	fs afero.Fs
}

func NewFileService(config FileServiceConfig) FileService {
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}

	return FileService{
		fs: config.Fs,
	}
}

/*
Inspect reads the file at path and derives the photo's name, bytes, and
content type. An unsupported file yields an empty content type.
*/
func (s FileService) Inspect(path string) (models.PhotoFile, error) {
	var (
		err    error
		binary []byte
	)

	if binary, err = afero.ReadFile(s.fs, path); err != nil {
		return models.PhotoFile{}, fmt.Errorf("error reading photo file '%s': %w", path, err)
	}

	return models.PhotoFile{
		Name:        filepath.Base(path),
		Binary:      binary,
		ContentType: ContentTypeFor(path, binary),
	}, nil
}

/*
ContentTypeFor guesses the content type from the file extension first and
falls back to sniffing the bytes.
*/
func ContentTypeFor(name string, binary []byte) string {
	if contentType, ok := contentTypesByExtension[strings.ToLower(filepath.Ext(name))]; ok {
		return contentType
	}

	if len(binary) == 0 {
		return ""
	}

	detected := mimetype.Detect(binary).String()

	if slices.IsInSlice(detected, SupportedContentTypes) {
		return detected
	}

	return ""
}
