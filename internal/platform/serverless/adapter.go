// Package serverless runs the HTTP router inside a function-style invocation:
// one JSON event in, one JSON response out.
package serverless

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// FunctionsPrefix is the path prefix function platforms put in front of the function name.
const FunctionsPrefix = "/.netlify/functions/"

const requestIDHeader = "X-Request-Id"

// Event is the inbound invocation payload.
type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Headers               map[string]string `json:"headers"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
}

// Response is the outbound invocation payload.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Adapter dispatches events to an http.Handler.
type Adapter struct {
	handler http.Handler
}

// New wraps handler.
func New(handler http.Handler) *Adapter {
	return &Adapter{handler: handler}
}

// Invoke converts ev to a request, serves it and converts the recorded response.
func (a *Adapter) Invoke(ctx context.Context, ev Event) (*Response, error) {
	req, err := NewRequest(ctx, ev)
	if err != nil {
		return nil, err
	}

	rw := newResponseWriter()
	a.handler.ServeHTTP(rw, req)

	res := rw.response()
	if id := req.Header.Get(requestIDHeader); id != "" {
		res.Headers[requestIDHeader] = id
	}
	log.Printf("[serverless] %s %s -> %d (%d bytes)", req.Method, req.URL.Path, res.StatusCode, rw.body.Len())
	return res, nil
}

// NewRequest builds the http.Request described by ev.
func NewRequest(ctx context.Context, ev Event) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(ev.HTTPMethod))
	if method == "" {
		method = http.MethodGet
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded && ev.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, fmt.Errorf("decode event body: %w", err)
		}
		body = decoded
	}

	target := &url.URL{Path: RoutePath(ev.Path)}
	if len(ev.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range ev.QueryStringParameters {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range ev.Headers {
		req.Header.Set(k, v)
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}
	req.RemoteAddr = "127.0.0.1:0"
	if ip := req.Header.Get("X-Nf-Client-Connection-Ip"); ip != "" {
		req.RemoteAddr = ip + ":0"
	}
	return req, nil
}

// RoutePath maps a function path onto the router's /api tree.
// "/.netlify/functions/roleplay" becomes "/api/roleplay"; other paths are kept.
func RoutePath(p string) string {
	if p == "" {
		return "/"
	}
	if rest, ok := strings.CutPrefix(p, FunctionsPrefix); ok {
		return "/api/" + rest
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

// IsTextContent reports whether a body of this content type can travel as plain text.
func IsTextContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case strings.HasSuffix(mediaType, "json"):
		return true
	case strings.HasSuffix(mediaType, "xml"), mediaType == "application/javascript":
		return true
	}
	return false
}

type responseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header { return w.header }

func (w *responseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(p)
}

func (w *responseWriter) response() *Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	headers := make(map[string]string, len(w.header))
	for k, v := range w.header {
		headers[k] = strings.Join(v, ", ")
	}

	res := &Response{StatusCode: status, Headers: headers}
	if w.body.Len() == 0 {
		return res
	}
	if IsTextContent(w.header.Get("Content-Type")) {
		res.Body = w.body.String()
		return res
	}
	res.Body = base64.StdEncoding.EncodeToString(w.body.Bytes())
	res.IsBase64Encoded = true
	return res
}
