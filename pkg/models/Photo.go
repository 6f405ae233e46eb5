package models

const (
	DefaultBoundary = "===============PicasaRubyGem=="
	DefaultETag     = "*"
)

/*
PhotoParams describes a photo to upload or update. Title, Binary and
ContentType may be left empty when FilePath is set; they are then derived
from the file.
*/
type PhotoParams struct {
	FilePath    string
	Title       string `param:"title" validate:"required"`
	Summary     string
	Binary      []byte `param:"binary" validate:"required,min=1"`
	ContentType string `param:"content_type" validate:"required"`
	Boundary    string
	ETag        string
}

// PhotoFile is what can be learned about a photo from the file alone.
type PhotoFile struct {
	Name        string
	Binary      []byte
	ContentType string
}

type DestroyOptions struct {
	ETag string
}
