// Package backend is the HTTP client of the platform backend. Every call is
// made on behalf of the signed-in admin: the admin's session cookies travel
// with the request context and are attached to each outbound request.
package backend

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

	"go.vocdoni.io/dvote/log"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:3001/v1/api"

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 30 * time.Second

// Client wraps credentialed JSON calls to the platform backend.
type Client struct {
	http           *http.Client
	baseURL        string
	onUnauthorized func(ctx context.Context)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUnauthorizedHook installs the function run on every 401 answer, before
// the error is returned to the caller. The console uses it to send the
// browser back to the login page whatever the call site.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type credentialsKey struct{}

// WithCredentials returns a copy of ctx carrying the cookies that must be
// attached to every backend request made with it.
func WithCredentials(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, credentialsKey{}, cookies)
}

func credentialsFromContext(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(credentialsKey{}).([]*http.Cookie)
	return cookies
}

// doJSON sends an HTTP request and decodes a JSON response into target when
// provided. The returned response has its body already consumed and closed;
// it is only useful to read headers such as Set-Cookie.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, target any) (*http.Response, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, cookie := range credentialsFromContext(ctx) {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request %s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warnw("failed to close backend response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		statusErr := &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: extractMessage(respBody),
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return resp, statusErr
	}

	if target == nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return resp, fmt.Errorf("drain response body: %w", err)
		}
		return resp, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return resp, fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}
	return resp, nil
}

// maxMessageLength bounds, in characters, the message taken from a non JSON
// error body.
const maxMessageLength = 200

// extractMessage pulls the human readable message out of a backend error
// body. Both {"message": "..."} and {"error": "..."} shapes are accepted.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	trimmed := []rune(strings.ToValidUTF8(strings.TrimSpace(string(body)), ""))
	if len(trimmed) > maxMessageLength {
		trimmed = trimmed[:maxMessageLength]
	}
	return string(trimmed)
}
