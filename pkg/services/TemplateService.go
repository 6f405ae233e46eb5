package services

import (
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"

	"github.com/adampresley/picasa/pkg/models"
)

//go:embed templates
var templateFS embed.FS

type TemplateKind string

const (
	// KindNewPhoto renders a multipart/related body with the entry and the photo bytes.
	KindNewPhoto TemplateKind = "new_photo"
	// KindPhoto renders the metadata entry alone.
	KindPhoto TemplateKind = "photo"
)

type TemplateRenderer interface {
	Render(kind TemplateKind, params models.PhotoParams) (string, error)
}

type TemplateService struct {
	templates *template.Template
}

func NewTemplateService() TemplateService {
	funcs := template.FuncMap{
		"xml": escapeXML,
		"raw": func(b []byte) string {
			return string(b)
		},
	}

	return TemplateService{
		templates: template.Must(template.New("picasa").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")),
	}
}

func (s TemplateService) Render(kind TemplateKind, params models.PhotoParams) (string, error) {
	var (
		err error
		b   strings.Builder
	)

	name := string(kind) + ".tmpl"

	if s.templates.Lookup(name) == nil {
		return "", fmt.Errorf("unknown template '%s'", kind)
	}

	if err = s.templates.ExecuteTemplate(&b, name, params); err != nil {
		return "", fmt.Errorf("error rendering template '%s': %w", kind, err)
	}

	return b.String(), nil
}

// MultipartContentType is the Content-Type header for a new_photo body.
func MultipartContentType(boundary string) string {
	return fmt.Sprintf("multipart/related; boundary=\"%s\"", boundary)
}

func escapeXML(value string) string {
	b := strings.Builder{}
	_ = xml.EscapeText(&b, []byte(value))
	return b.String()
}
