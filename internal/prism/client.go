// Package prism is a thin client for the Prism Central v4 REST APIs used by
// the prismops CLI: VM inventory, VM creation, and the category association
// action. Requests are strictly sequential; the client performs no retries.
package prism

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single Prism Central endpoint with basic authentication.
type Client struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the given endpoint and credentials.
//
// TLS certificate verification is disabled: lab Prism Central endpoints ship
// self-signed certificates and the scripts this tool replaces accepted them.
func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		username:  username,
		password:  password,
		userAgent: "prismops",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				// #nosec G402
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is the raw result of one API exchange.
type response struct {
	status int
	etag   string
	body   []byte
}

// Get issues a GET against a path under the configured base URL and returns
// the response body together with the ETag header, the precondition token
// for subsequent conditional writes.
func (c *Client) Get(ctx context.Context, path string) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}
	return resp.body, resp.etag, nil
}

// Post issues a POST with a JSON payload and optional extra headers. Any 2xx
// status is treated as success; callers with a stricter contract (the
// associate-categories action) use do directly.
func (c *Client) Post(ctx context.Context, path string, headers map[string]string, payload interface{}) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, headers, payload)
	if err != nil {
		return nil, "", err
	}
	return resp.body, resp.etag, nil
}

// do performs one request. Non-2xx statuses are converted to *APIError with
// the response body preserved for diagnostics.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, payload interface{}) (*response, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(method, url, resp.StatusCode, data)
	}

	return &response{
		status: resp.StatusCode,
		etag:   resp.Header.Get("ETag"),
		body:   data,
	}, nil
}
