package models

import (
	"fmt"
)

var (
	ErrBadRequest         = fmt.Errorf("bad request")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")
	ErrNotFound           = fmt.Errorf("album or photo not found")
	ErrConflict           = fmt.Errorf("conflict")
	ErrPreconditionFailed = fmt.Errorf("precondition failed: etag does not match")

	ErrEditLinkNotFound = fmt.Errorf("entry has no edit link")
	ErrMissingEntry     = fmt.Errorf("response does not contain an entry")
)

/*
ValidationError is returned when a required photo field is missing. It is
always raised before any request is sent.
*/
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be specified", field),
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}

/*
ResponseError wraps a non-2xx response from the API. Err holds one of the
sentinel errors above when the status code has a known meaning.
*/
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Err.Error())
	}

	return fmt.Sprintf("%s %s returned %d", e.Method, e.URL, e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
