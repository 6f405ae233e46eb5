package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adampresley/picasa/pkg/models"
)

const (
	DefaultBaseURL = "https://picasaweb.google.com"
)

/*
ConnectionServicer performs the HTTP verbs used by the resources. Failed
responses are returned as *models.ResponseError wrapping a sentinel error.
*/
type ConnectionServicer interface {
	Get(ctx context.Context, path string, headers http.Header) (*Response, error)
	Post(ctx context.Context, path string, headers http.Header, body string) (*Response, error)
	Put(ctx context.Context, path string, headers http.Header, body string) (*Response, error)
	Patch(ctx context.Context, path string, headers http.Header, body string) (*Response, error)
	Delete(ctx context.Context, path string, headers http.Header) (*Response, error)
}

type ConnectionConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type Connection struct {
	baseURL    string
	httpClient *http.Client
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Entry parses the entry carried by the response body.
func (r *Response) Entry() (models.PhotoEntry, error) {
	return models.ParsePhotoEntry(r.Header.Get("Content-Type"), r.Body)
}

func NewConnection(config ConnectionConfig) Connection {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return Connection{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: config.HTTPClient,
	}
}

func (c Connection) Get(ctx context.Context, path string, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, headers, "")
}

func (c Connection) Post(ctx context.Context, path string, headers http.Header, body string) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, headers, body)
}

func (c Connection) Put(ctx context.Context, path string, headers http.Header, body string) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, headers, body)
}

func (c Connection) Patch(ctx context.Context, path string, headers http.Header, body string) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, headers, body)
}

func (c Connection) Delete(ctx context.Context, path string, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, headers, "")
}

/*
URL resolves a path against the base URL. Edit links handed out by the
server are already absolute and are used as they are.
*/
func (c Connection) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c Connection) do(ctx context.Context, method, path string, headers http.Header, body string) (*Response, error) {
	var (
		err      error
		req      *http.Request
		resp     *http.Response
		respBody []byte
		reqBody  io.Reader
	)

	reqURL := c.URL(path)

	if body != "" {
		reqBody = strings.NewReader(body)
	}

	if req, err = http.NewRequestWithContext(ctx, method, reqURL, reqBody); err != nil {
		return nil, fmt.Errorf("error creating %s request for '%s': %w", method, reqURL, err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	slog.Debug("picasa request", "method", method, "url", reqURL, "bodyLength", len(body))

	if resp, err = c.httpClient.Do(req); err != nil {
		slog.Error("picasa request failed", "method", method, "url", reqURL, "error", err)
		return nil, fmt.Errorf("error sending %s request to '%s': %w", method, reqURL, err)
	}

	defer resp.Body.Close()

	if respBody, err = io.ReadAll(resp.Body); err != nil {
		return nil, fmt.Errorf("error reading response from '%s': %w", reqURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := &models.ResponseError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(respBody)),
			Err:        errorForStatus(resp.StatusCode),
		}

		slog.Error("picasa request rejected", "method", method, "url", reqURL, "status", resp.StatusCode, "body", respErr.Body)
		return nil, respErr
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func errorForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return models.ErrBadRequest
	case http.StatusUnauthorized:
		return models.ErrUnauthorized
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrConflict
	case http.StatusPreconditionFailed:
		return models.ErrPreconditionFailed
	default:
		return nil
	}
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

// IsPreconditionFailed reports whether err came from an etag mismatch.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, models.ErrPreconditionFailed)
}
