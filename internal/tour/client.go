package tour

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the hosted tour generator.
	DefaultEndpoint = "https://wander-api.onrender.com/tour/"
	// DefaultTimeout bounds the single request attempt. Tour generation is slow.
	DefaultTimeout = 150 * time.Second

	formContentType = "application/x-www-form-urlencoded"
)

// Sender delivers a request and returns the raw response body.
type Sender interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

// Doer is the subset of *http.Client used by Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client posts tour requests to the generator. It makes exactly one attempt
// and never inspects the status code.
type Client struct {
	endpoint string
	http     Doer
	timeout  time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP transport.
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient prepares a client for endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Send posts req as a form body. Any failure before response bytes are read
// is reported as *TransportError.
func (c *Client) Send(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(req.Encode()))
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("invalid endpoint %q", c.endpoint), Err: err}
	}
	httpReq.Header.Set("Content-Type", formContentType)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	return body, nil
}
