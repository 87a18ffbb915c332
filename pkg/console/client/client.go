// Package client is the console's HTTP client for the platform API. It
// speaks the response envelope contract and hands paged list bodies to the
// page normalizer untouched.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/pkg/console/page"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

// Client calls the platform API on behalf of the console.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger for degraded-response traces.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for the API rooted at baseURL (e.g. the /api/v1 prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token after a login or refresh.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

// ListQuery fetches one page of a resource. The returned raw body may be
// partial or malformed; the caller normalizes it, so a bad page payload is
// never an error here.
func (c *Client) ListQuery(ctx context.Context, resource string, q page.Query) (page.Raw, error) {
	q = q.Normalized()
	body := map[string]interface{}{
		"page":  q.Page,
		"limit": q.PageSize,
	}
	if q.Search != "" {
		body["search"] = q.Search
	}
	for k, v := range q.Filters {
		switch k {
		case "page", "limit", "search":
			// Reserved pagination keys never come from filters.
			continue
		}
		body[k] = v
	}

	data, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s/list", c.baseURL, resource), jsonBody(body))
	if err != nil {
		return page.Raw{}, err
	}

	var raw page.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warn("malformed page payload, substituting defaults",
			zap.String("resource", resource), zap.Error(err))
		return page.Raw{}, nil
	}
	return raw, nil
}

// CreateOrUpdate saves a record. An empty id creates, a non-empty id
// updates. The payload is JSON encoded unless it is a *Multipart carrying
// file attachments.
func (c *Client) CreateOrUpdate(ctx context.Context, resource, id string, payload interface{}) (json.RawMessage, error) {
	method := http.MethodPost
	url := fmt.Sprintf("%s/%s", c.baseURL, resource)
	if id != "" {
		method = http.MethodPut
		url = fmt.Sprintf("%s/%s/%s", c.baseURL, resource, id)
	}

	if mp, ok := payload.(*Multipart); ok {
		body, contentType, err := mp.encode()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode attachments")
		}
		return c.do(ctx, method, url, requestBody{reader: body, contentType: contentType})
	}
	return c.do(ctx, method, url, jsonBody(payload))
}

// Remove deletes a record.
func (c *Client) Remove(ctx context.Context, resource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%s/%s", c.baseURL, resource, id), requestBody{})
	return err
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%s/%s", c.baseURL, resource, id), requestBody{})
}

type requestBody struct {
	reader      io.Reader
	contentType string
}

func jsonBody(payload interface{}) requestBody {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads are plain structs and maps; an encode failure is a
		// programming error surfaced on the server side as a bad request.
		data = []byte("{}")
	}
	return requestBody{reader: bytes.NewReader(data), contentType: "application/json"}
}

func (c *Client) do(ctx context.Context, method, url string, body requestBody) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body.reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	if body.contentType != "" {
		req.Header.Set("Content-Type", body.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, "REQUEST_FAILED", http.StatusServiceUnavailable, "could not reach the server")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, "REQUEST_FAILED", http.StatusServiceUnavailable, "could not read the server response")
	}

	var env envelope
	if len(data) > 0 {
		if err := json.Unmarshal(data, &env); err != nil && resp.StatusCode < 300 {
			c.logger.Warn("response is not an envelope", zap.String("url", url), zap.Error(err))
		}
	}

	if env.Error != nil {
		if env.Error.Status == 0 {
			env.Error.Status = resp.StatusCode
		}
		return nil, env.Error
	}
	if resp.StatusCode >= 300 {
		return nil, appErrors.New("REQUEST_FAILED", resp.StatusCode, fmt.Sprintf("server responded with status %d", resp.StatusCode))
	}
	return env.Data, nil
}

// Multipart accumulates form fields and file attachments for endpoints that
// accept uploads (banner images, logos, QR codes, gallery media).
type Multipart struct {
	fields map[string]string
	files  []filePart
}

type filePart struct {
	field    string
	filename string
	reader   io.Reader
}

// NewMultipart starts an empty multipart payload.
func NewMultipart() *Multipart {
	return &Multipart{fields: map[string]string{}}
}

// Field adds a plain form field.
func (m *Multipart) Field(name, value string) *Multipart {
	m.fields[name] = value
	return m
}

// File attaches an upload under the given form field.
func (m *Multipart) File(field, filename string, r io.Reader) *Multipart {
	m.files = append(m.files, filePart{field: field, filename: filename, reader: r})
	return m
}

func (m *Multipart) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for name, value := range m.fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, file := range m.files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.field, err)
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", file.field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}
