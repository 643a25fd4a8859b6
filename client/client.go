// Package client provides a typed Go SDK for the House Hunters REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is the top-level House Hunters API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	log        logrus.FieldLogger

	Properties *PropertyService
	Amenities  *AmenityService
	Admin      *AdminService
	Uploads    *UploadService
}

// Option configures a Client.
type Option func(*Client)

// WithSession sets the session that supplies the bearer token.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the given API base URL, including the /api
// prefix (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	if c.session == nil {
		c.session = NewSession(NewMemoryStore())
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	c.Properties = &PropertyService{c: c}
	c.Amenities = &AmenityService{c: c}
	c.Admin = &AdminService{c: c}
	c.Uploads = &UploadService{c: c}
	return c
}

// Session returns the session holding the bearer token.
func (c *Client) Session() *Session { return c.session }

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health calls the service health check, which lives outside the /api prefix.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	u := strings.TrimSuffix(c.baseURL, "/api") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	var resp HealthResponse
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Info returns the API description served at /api/info.
func (c *Client) Info(ctx context.Context) (*InfoResponse, error) {
	var resp InfoResponse
	if err := c.get(ctx, "/info", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes a JSON request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, result)
}

// newRequest builds a request against the API base URL and attaches the
// session token when one is stored. A missing token is not an error: the
// server decides whether the call needs one.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// send performs a single attempt. 204 and empty bodies decode to nothing.
func (c *Client) send(req *http.Request, result any) error {
	respBody, _, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) roundTrip(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", req.URL.String()).Debug("request failed")
		return nil, nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		if apiErr.RequestID == "" {
			apiErr.RequestID = resp.Header.Get("X-Request-ID")
		}
		c.log.WithFields(logrus.Fields{
			"method":     req.Method,
			"url":        req.URL.String(),
			"status":     resp.StatusCode,
			"request_id": apiErr.RequestID,
		}).Debug(apiErr.Message)
		return nil, nil, apiErr
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.Header, nil
	}
	return respBody, resp.Header, nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// put is a convenience wrapper for PUT requests.
func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// del is a convenience wrapper for DELETE requests.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
