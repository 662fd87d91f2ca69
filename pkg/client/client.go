// Package client is a small typed client for the gymcore API.
//
// Credentials are never stored on the Client; every call that needs one
// takes the token explicitly, so a single Client is safe to share between
// goroutines acting as different principals:
//
//	c := client.New("http://localhost:8080")
//	res, err := c.Login(ctx, "owner@gym.test", "secret1")
//	members, err := c.Members(ctx, res.Token)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gymstack/gymcore/pkg/logger"
)

// DefaultAuthHeader is the header the API reads tokens from.
const DefaultAuthHeader = "x-auth-token"

type Client struct {
	base       string
	authHeader string
	hc         *http.Client
	retries    int
	retryWait  time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithAuthHeader overrides the token header name.
func WithAuthHeader(h string) Option { return func(c *Client) { c.authHeader = h } }

// WithRetry makes transport failures retry up to n attempts in total with
// exponential backoff starting at wait. HTTP error statuses are not retried.
func WithRetry(n int, wait time.Duration) Option {
	return func(c *Client) { c.retries, c.retryWait = n, wait }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:       strings.TrimRight(baseURL, "/"),
		authHeader: DefaultAuthHeader,
		hc:         &http.Client{Timeout: 30 * time.Second},
		retries:    1,
		retryWait:  500 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request is one API call under construction.
type Request struct {
	c      *Client
	method string
	path   string
	token  string
	body   any
}

func (c *Client) Get(path string) *Request    { return c.newRequest(http.MethodGet, path) }
func (c *Client) Post(path string) *Request   { return c.newRequest(http.MethodPost, path) }
func (c *Client) Put(path string) *Request    { return c.newRequest(http.MethodPut, path) }
func (c *Client) Patch(path string) *Request  { return c.newRequest(http.MethodPatch, path) }
func (c *Client) Delete(path string) *Request { return c.newRequest(http.MethodDelete, path) }

func (c *Client) newRequest(method, path string) *Request {
	return &Request{c: c, method: method, path: path}
}

// Token sets the credential for this request only.
func (r *Request) Token(t string) *Request {
	r.token = t
	return r
}

// Body sets a value to send as JSON.
func (r *Request) Body(v any) *Request {
	r.body = v
	return r
}

// Send performs the request. A non-2xx status is not an error; use
// Response.Err for that.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("client: marshal body: %w", err)
		}
		payload = b
	}

	var lastErr error
	for attempt := 1; attempt <= r.c.retries; attempt++ {
		resp, err := r.do(ctx, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt < r.c.retries {
			backoff := time.Duration(float64(r.c.retryWait) * math.Pow(2, float64(attempt-1)))
			logger.Warn("client: request failed, retrying",
				"path", r.path, "attempt", attempt, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("client: %s %s: %w", r.method, r.path, lastErr)
}

func (r *Request) do(ctx context.Context, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.c.base+r.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set(r.c.authHeader, r.token)
	}

	resp, err := r.c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Raw: raw}, nil
}

type Response struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
}

func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// JSON decodes the body into dest.
func (r *Response) JSON(dest any) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("client: decode JSON: %w", err)
	}
	return nil
}

// Err returns an *APIError for a non-2xx response, nil otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	e := &APIError{Status: r.StatusCode}
	if json.Unmarshal(r.Raw, e) != nil {
		e.Msg = strings.TrimSpace(string(r.Raw))
	}
	return e
}

// APIError is the {"msg", "errors"} body the API returns on failure.
type APIError struct {
	Status int               `json:"-"`
	Msg    string            `json:"msg"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gymcore: %d %s", e.Status, e.Msg)
}
