package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPage is used when a non-positive page is requested.
	DefaultPage = 1
	// DefaultLimit is used when a non-positive page size is requested.
	DefaultLimit = 10

	listPath = "/list-doctor-with-filter"
	addPath  = "/add-doctor"

	// OpFetch and OpSubmit label recorded API calls.
	OpFetch  = "fetch_doctors"
	OpSubmit = "add_doctor"
)

// Recorder observes calls made to the directory API.
type Recorder interface {
	ObserveAPICall(operation, outcome string, duration time.Duration)
}

// Client wraps the remote directory API. Every call is a single attempt:
// no retries and no caching. Cancellation comes from the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient constructs a client for the given API base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListURL returns the listing URL for the given filters and page.
func (c *Client) ListURL(filters FilterState, page, limit int) string {
	return c.baseURL + listPath + "?" + ListQuery(filters, page, limit)
}

// ListQuery serialises filters, then page, then limit, preserving that order.
func ListQuery(filters FilterState, page, limit int) string {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	pairs := filters.Pairs()
	pairs = append(pairs,
		[2]string{"page", strconv.Itoa(page)},
		[2]string{"limit", strconv.Itoa(limit)},
	)
	return EncodeQuery(pairs)
}

// FetchDoctors loads one page of doctors matching filters.
func (c *Client) FetchDoctors(ctx context.Context, filters FilterState, page, limit int) (Envelope, error) {
	start := time.Now()
	env, err := c.fetchDoctors(ctx, filters, page, limit)
	c.observe(OpFetch, err, start)
	return env, err
}

func (c *Client) fetchDoctors(ctx context.Context, filters FilterState, page, limit int) (Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListURL(filters, page, limit), nil)
	if err != nil {
		return Envelope{}, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Envelope{}, &FetchError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Envelope{}, &FetchError{Status: resp.StatusCode}
	}
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Envelope{}, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if env.Data == nil {
		env.Data = []Doctor{}
	}
	return env, nil
}

// AddDoctor submits a new doctor record.
func (c *Client) AddDoctor(ctx context.Context, sub Submission) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.addDoctor(ctx, sub)
	c.observe(OpSubmit, err, start)
	return body, err
}

func (c *Client) addDoctor(ctx context.Context, sub Submission) (json.RawMessage, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, &SubmitError{Detail: err.Error(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+addPath, bytes.NewReader(payload))
	if err != nil {
		return nil, &SubmitError{Detail: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Detail: err.Error(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmitError{Status: resp.StatusCode, Detail: errorDetail(resp.StatusCode, raw, readErr)}
	}
	if readErr != nil {
		return nil, &SubmitError{Status: resp.StatusCode, Detail: readErr.Error(), Err: readErr}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, &SubmitError{Status: resp.StatusCode, Detail: "invalid JSON in success response"}
	}
	return json.RawMessage(raw), nil
}

// errorDetail prefers the server's JSON body, compacted, and falls back to the status line.
func errorDetail(status int, raw []byte, readErr error) string {
	if readErr == nil && len(bytes.TrimSpace(raw)) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return fmt.Sprintf("Status %d: %s", status, http.StatusText(status))
}

func (c *Client) observe(op string, err error, start time.Time) {
	if c.recorder == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.recorder.ObserveAPICall(op, outcome, time.Since(start))
}
