// Package client provides a small Go client for a running mocksmith server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a mocksmith HTTP client.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	token       string
	bearerToken string
	authHeader  string
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new mocksmith client.
func NewClient(baseURL string, opts ...Option) *Client {
	// Remove trailing slash from baseURL
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authHeader: "Authorization",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithToken sets the raw shared-secret token sent on the auth header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithBearerToken sets the token sent in "Bearer <token>" form.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// WithAuthHeader overrides the header the token is sent on (default
// "Authorization").
func WithAuthHeader(header string) Option {
	return func(c *Client) {
		c.authHeader = header
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// Get requests path and decodes the JSON response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

// GetList requests path and decodes a JSON array response.
func (c *Client) GetList(ctx context.Context, path string) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Post sends body to path and decodes the JSON response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// Put sends body to path and decodes the JSON response into result.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, http.MethodPut, path, body, result)
}

// Patch sends body to path and decodes the JSON response into result.
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, http.MethodPatch, path, body, result)
}

// Delete requests path with DELETE and decodes the JSON response into result.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, result)
}

// doRequest performs an HTTP request and decodes the JSON response.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mocksmith: failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("mocksmith: failed to create request: %w", err)
	}

	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.parseError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("mocksmith: failed to decode response: %w", err)
		}
	}

	return nil
}

// setHeaders sets common headers on a request.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(c.authHeader, c.token)
	}
	if c.bearerToken != "" {
		req.Header.Set(c.authHeader, "Bearer "+c.bearerToken)
	}
}

// parseError parses an error response from the server.
func (c *Client) parseError(resp *http.Response) error {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.Message
		if message == "" {
			message = errResp.Error
		}
	}
	if message == "" {
		// If we can't parse the error, use the raw body
		message = string(body)
		if message == "" {
			message = resp.Status
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
