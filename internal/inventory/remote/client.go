package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/autopeer-io/inventory/internal/inventory/core"
	"github.com/autopeer-io/inventory/internal/inventory/core/model"
	"github.com/autopeer-io/inventory/internal/pkg/metrics"
	"github.com/autopeer-io/inventory/pkg/log"
	"github.com/autopeer-io/inventory/pkg/options"
)

// maxErrorBody caps how much of a failed response is read for error details.
const maxErrorBody = 1 << 20

var _ core.RemoteRepository = (*Client)(nil)

// Client talks to the inventory backend over its REST contract:
//
//	GET    /cars/
//	POST   /cars/
//	DELETE /cars/{id}/
//	POST   /cars/{id}/upload-images/
//
// It keeps no state between calls.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	logger    log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client from the API options.
func New(opts *options.ApiOptions, extra ...Option) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("api options are required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		logger:    log.WithName("remote"),
	}
	for _, o := range extra {
		o(c)
	}
	return c, nil
}

// BaseURL returns the backend root, used to resolve relative image paths.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) List(ctx context.Context) ([]model.VehicleRecord, error) {
	const op = "list vehicles"

	resp, err := c.do(ctx, "list", http.MethodGet, "/cars/", nil, "")
	if err != nil {
		return nil, &core.TransportError{Op: op, Err: err}
	}
	defer drain(resp.Body)

	if !success(resp.StatusCode) {
		return nil, &core.TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	var records []model.VehicleRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &core.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if records == nil {
		records = []model.VehicleRecord{}
	}
	return records, nil
}

func (c *Client) Create(ctx context.Context, draft *model.VehicleDraft) (*model.VehicleRecord, error) {
	const op = "create vehicle"

	d := *draft
	if d.Features == nil {
		d.Features = []string{}
	}
	if d.Extras == nil {
		d.Extras = []string{}
	}
	body, err := json.Marshal(&d)
	if err != nil {
		return nil, fmt.Errorf("%s: encode draft: %w", op, err)
	}

	resp, err := c.do(ctx, "create", http.MethodPost, "/cars/", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, &core.TransportError{Op: op, Err: err}
	}
	defer drain(resp.Body)

	if !success(resp.StatusCode) {
		return nil, classify(op, resp)
	}

	var record model.VehicleRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, &core.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if !record.Persisted() {
		return nil, &core.TransportError{Op: op, StatusCode: resp.StatusCode, Err: core.ErrNotPersisted}
	}
	return &record, nil
}

func (c *Client) DeleteByID(ctx context.Context, id int64) error {
	op := fmt.Sprintf("delete vehicle %d", id)

	resp, err := c.do(ctx, "delete", http.MethodDelete, carPath(id), nil, "")
	if err != nil {
		return &core.TransportError{Op: op, Err: err}
	}
	defer drain(resp.Body)

	// 204 No Content and any other 2xx are both success.
	if success(resp.StatusCode) {
		return nil
	}
	return classify(op, resp)
}

func (c *Client) UploadAssets(ctx context.Context, id int64, files []model.Blob) error {
	body, contentType, err := encodeImages(files)
	if err != nil {
		return &core.UploadError{VehicleID: id, Files: len(files), Err: err}
	}

	resp, err := c.do(ctx, "upload", http.MethodPost, carPath(id)+"upload-images/", body, contentType)
	if err != nil {
		return &core.UploadError{VehicleID: id, Files: len(files), Err: err}
	}
	defer drain(resp.Body)

	if success(resp.StatusCode) {
		return nil
	}

	uerr := &core.UploadError{VehicleID: id, Files: len(files), StatusCode: resp.StatusCode}
	if fields, _ := decodeFieldErrors(io.LimitReader(resp.Body, maxErrorBody)); !fields.Empty() {
		uerr.Err = fmt.Errorf("%s", fields.Headline())
	}
	return uerr
}

// do sends one request and records its latency.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	took := time.Since(start)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	metrics.RemoteRequestLatency.WithLabelValues(op, code).Observe(took.Seconds())
	c.logger.Debug("Backend request", "method", method, "path", u.Path, "code", code, "took", took)

	return resp, err
}

// classify turns a failed create/delete response into a ValidationError when
// a 4xx body maps fields to message lists, and a TransportError otherwise.
// The TransportError keeps the body's headline message when there is one.
func classify(op string, resp *http.Response) error {
	fields, lists := decodeFieldErrors(io.LimitReader(resp.Body, maxErrorBody))
	if fields.Empty() {
		return &core.TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	if lists && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &core.ValidationError{Op: op, StatusCode: resp.StatusCode, Fields: fields}
	}
	return &core.TransportError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(fields.Headline())}
}

func carPath(id int64) string {
	return "/cars/" + strconv.FormatInt(id, 10) + "/"
}

func success(code int) bool {
	return code >= 200 && code < 300
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
	_ = body.Close()
}
