package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const maxResponseBytes = 1_048_578 // 1mb

// KeyProvider returns the admin key to attach as X-Admin-Key, or "" when the
// operator has not unlocked admin mode.
type KeyProvider func() string

// Client wraps the backend REST surface under a single base URL. All requests
// are JSON in/out unless sent through PostMultipart.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.SugaredLogger
	adminKey KeyProvider
}

func NewClient(baseURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// SetAdminKeyProvider wires the durable admin-key lookup. Once set, every
// request carries the header when the key is non-empty, mirroring how the
// browser attached it from local storage.
func (c *Client) SetAdminKeyProvider(fn KeyProvider) {
	c.adminKey = fn
}

// RequestOption mutates the outgoing request before it is sent.
type RequestOption func(*http.Request)

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.send(req, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.send(req, out, opts...)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out, opts...)
}

// Form carries multipart submissions: ordered fields plus file attachments.
// The admin product form and the review form both go through here when a
// local file is attached; the same fields go as a JSON body otherwise.
type Form struct {
	fields [][2]string
	files  []formFile
}

type formFile struct {
	field    string
	path     string
	filename string
}

func (f *Form) Set(key, value string) {
	f.fields = append(f.fields, [2]string{key, value})
}

func (f *Form) AttachFile(field, path string) {
	f.files = append(f.files, formFile{field: field, path: path, filename: filepath.Base(path)})
}

func (f *Form) HasFiles() bool {
	return len(f.files) > 0
}

func (c *Client) PostMultipart(ctx context.Context, path string, form *Form, out any, opts ...RequestOption) error {
	return c.sendMultipart(ctx, http.MethodPost, path, form, out, opts...)
}

func (c *Client) PutMultipart(ctx context.Context, path string, form *Form, out any, opts ...RequestOption) error {
	return c.sendMultipart(ctx, http.MethodPut, path, form, out, opts...)
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, form *Form, out any, opts ...RequestOption) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range form.fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return err
		}
	}
	for _, file := range form.files {
		src, err := os.Open(file.path)
		if err != nil {
			return fmt.Errorf("attach %s: %w", file.field, err)
		}
		part, err := writer.CreateFormFile(file.field, file.filename)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		src.Close()
		if err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out, opts...)
}

func (c *Client) send(req *http.Request, out any, opts ...RequestOption) error {
	if c.adminKey != nil {
		if key := c.adminKey(); key != "" {
			req.Header.Set("X-Admin-Key", key)
		}
	}
	for _, opt := range opts {
		opt(req)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Debugw("request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		}
		return NetworkError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return NetworkError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return FromStatus(res.StatusCode, decodeErrorMessage(body))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Code:    "BAD_RESPONSE",
			Message: "unexpected response from server",
			Status:  res.StatusCode,
			Err:     err,
		}
	}
	return nil
}

// decodeErrorMessage pulls the backend's {error} body; a malformed body
// degrades to "" so FromStatus falls back to the status text.
func decodeErrorMessage(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
