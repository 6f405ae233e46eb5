package services_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/adampresley/picasa/pkg/services"
)

type recordedCall struct {
	Method  string
	Path    string
	Headers http.Header
	Body    string
}

/*
fakeConnection records every request and answers from a queue of canned
responses.
*/
type fakeConnection struct {
	calls     []recordedCall
	responses []*services.Response
	errs      []error
}

func (f *fakeConnection) respond(response *services.Response, err error) {
	f.responses = append(f.responses, response)
	f.errs = append(f.errs, err)
}

func (f *fakeConnection) record(method, path string, headers http.Header, body string) (*services.Response, error) {
	f.calls = append(f.calls, recordedCall{Method: method, Path: path, Headers: headers, Body: body})

	if len(f.responses) == 0 {
		return nil, fmt.Errorf("unexpected %s %s", method, path)
	}

	response, err := f.responses[0], f.errs[0]
	f.responses, f.errs = f.responses[1:], f.errs[1:]
	return response, err
}

func (f *fakeConnection) Get(ctx context.Context, path string, headers http.Header) (*services.Response, error) {
	return f.record(http.MethodGet, path, headers, "")
}

func (f *fakeConnection) Post(ctx context.Context, path string, headers http.Header, body string) (*services.Response, error) {
	return f.record(http.MethodPost, path, headers, body)
}

func (f *fakeConnection) Put(ctx context.Context, path string, headers http.Header, body string) (*services.Response, error) {
	return f.record(http.MethodPut, path, headers, body)
}

func (f *fakeConnection) Patch(ctx context.Context, path string, headers http.Header, body string) (*services.Response, error) {
	return f.record(http.MethodPatch, path, headers, body)
}

func (f *fakeConnection) Delete(ctx context.Context, path string, headers http.Header) (*services.Response, error) {
	return f.record(http.MethodDelete, path, headers, "")
}

func atomResponse(body string) *services.Response {
	return &services.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/atom+xml; charset=UTF-8; type=entry"}},
		Body:       []byte(body),
	}
}

func entryXML(title string, links ...string) string {
	b := strings.Builder{}
	b.WriteString(`<entry xmlns='http://www.w3.org/2005/Atom' xmlns:gphoto='http://schemas.google.com/photos/2007'>`)
	b.WriteString("<title>" + title + "</title>")
	b.WriteString("<gphoto:id>5</gphoto:id><gphoto:albumid>42</gphoto:albumid>")

	for i := 0; i+1 < len(links); i += 2 {
		b.WriteString(fmt.Sprintf(`<link rel='%s' type='application/atom+xml' href='%s'/>`, links[i], links[i+1]))
	}

	b.WriteString("</entry>")
	return b.String()
}
