// ABOUTME: HTTP client for the university complaint management API
// ABOUTME: Wraps the authenticating transport and the server's success/error envelope

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/basgenix/uni-complaint-system/internal/credstore"
)

// Client is the API client for the complaint management backend. All
// endpoint groups (auth, student, admin, dashboard) hang off it.
type Client struct {
	baseURL    string
	creds      *credstore.Store
	transport  *authTransport
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the API at baseURL, authorizing requests
// with tokens persisted in creds.
func New(baseURL string, creds *credstore.Store, opts ...Option) *Client {
	transport := &authTransport{
		base:       http.DefaultTransport,
		creds:      creds,
		refreshURL: baseURL + "/auth/refresh",
	}
	c := &Client{
		baseURL:   baseURL,
		creds:     creds,
		transport: transport,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAuthExpired registers the callback invoked when the pipeline gives
// up on the current credentials. At most one handler is supported; the
// session store registers itself here.
func (c *Client) OnAuthExpired(fn func()) {
	c.transport.onAuthExpired = fn
}

// envelope is the server's uniform response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues a request and decodes the response envelope into out (when
// out is non-nil, it receives the envelope's data field). The server's
// message is returned for callers that surface it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return "", &Error{Status: resp.StatusCode}
		}
		return "", fmt.Errorf("invalid response from server: %w", decodeErr)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return "", &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("invalid response from server: %w", err)
		}
	}
	return env.Message, nil
}

// requestError converts context errors to user-friendly messages
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot reach server at %s: %w", c.baseURL, err)
}
