// Package api is the HTTP client for the remote task API.
package api

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

	"github.com/google/uuid"
	"github.com/ruminaider/taskdeck/internal/tasks"
)

const (
	// DefaultBaseURL is the task collection endpoint of a locally running API.
	DefaultBaseURL = "http://localhost:3000/api/tasks"

	// DefaultTimeout bounds each request when no http.Client is supplied.
	DefaultTimeout = 10 * time.Second

	requestIDHeader = "X-Request-ID"
)

// Client issues requests against a task collection URL.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	newID     func() string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (for testing or custom
// transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the collection at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "taskdeck",
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection URL requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListURL builds the list endpoint, appending the search parameter only when
// query is non-empty. Spaces are encoded as %20.
func (c *Client) ListURL(query string) string {
	if query == "" {
		return c.baseURL
	}
	return c.baseURL + "?search=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// FetchTasks lists tasks, filtered by query when it is non-empty. Tasks are
// returned in server order.
func (c *Client) FetchTasks(ctx context.Context, query string) ([]tasks.Task, error) {
	var list []tasks.Task
	if err := c.doJSON(ctx, "fetch", http.MethodGet, c.ListURL(query), nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []tasks.Task{}
	}
	return list, nil
}

// GetTask fetches a single task.
func (c *Client) GetTask(ctx context.Context, id int64) (tasks.Task, error) {
	var t tasks.Task
	if err := c.doJSON(ctx, "get", http.MethodGet, c.itemURL(id), nil, &t); err != nil {
		return tasks.Task{}, err
	}
	return t, nil
}

// CreateTask submits a draft and returns the created task.
func (c *Client) CreateTask(ctx context.Context, d tasks.Draft) (tasks.Task, error) {
	if err := d.Validate(); err != nil {
		return tasks.Task{}, err
	}
	body, err := json.Marshal(d)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("encoding task: %w", err)
	}
	var t tasks.Task
	if err := c.doJSON(ctx, "create", http.MethodPost, c.baseURL, body, &t); err != nil {
		return tasks.Task{}, err
	}
	return t, nil
}

// PatchCompletion sets the completion flag of a task. The response body and
// status are not inspected; only transport failures are reported.
func (c *Client) PatchCompletion(ctx context.Context, id int64, isCompleted bool) error {
	body, err := json.Marshal(struct {
		IsCompleted bool `json:"isCompleted"`
	}{isCompleted})
	if err != nil {
		return fmt.Errorf("encoding patch: %w", err)
	}

	target := c.itemURL(id)
	req, reqID, err := c.newRequest(ctx, http.MethodPatch, target, body)
	if err != nil {
		return &TransportError{Op: "patch", URL: target, RequestID: reqID, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "patch", URL: target, RequestID: reqID, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body []byte) (*http.Request, string, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	reqID := c.newID()
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, reqID, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, reqID, nil
}

// doJSON performs a request that must answer 2xx with a JSON body decodable
// into out.
func (c *Client) doJSON(ctx context.Context, op, method, target string, body []byte, out any) error {
	req, reqID, err := c.newRequest(ctx, method, target, body)
	if err != nil {
		return &TransportError{Op: op, URL: target, RequestID: reqID, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: target, RequestID: reqID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &TransportError{
			Op:         op,
			URL:        target,
			StatusCode: resp.StatusCode,
			RequestID:  reqID,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if err := decodeBody(resp.Body, out); err != nil {
		return &TransportError{Op: op, URL: target, RequestID: reqID, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// decodeBody decodes exactly one JSON value from r; anything after it other
// than whitespace is an error.
func decodeBody(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
