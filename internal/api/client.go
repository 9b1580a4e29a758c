package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/chat"
)

// DefaultEndpoint is the chat backend used when nothing overrides it. Set it
// per deployment target at build time:
//
//	go build -ldflags "-X github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/api.DefaultEndpoint=https://example.onrender.com/chat"
var DefaultEndpoint = "http://127.0.0.1:8000/chat"

// HTTPError is returned for a non-2xx response.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

func (e *HTTPError) StatusCode() int {
	return e.Status
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

var (
	sharedHTTPClient *http.Client
	httpClientOnce   sync.Once
)

// getSharedHTTPClient returns the pooled client. It has no overall timeout:
// a request that never completes keeps its loading placeholder.
func getSharedHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
			},
		}
	})
	return sharedHTTPClient
}

type Client struct {
	endpoint string
	client   Doer
}

type Option func(*Client)

// WithDoer replaces the shared HTTP client.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.client = d
	}
}

// NewClient creates a client for endpoint, or DefaultEndpoint when empty.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		client:   getSharedHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts one message and decodes the reply. Exactly one request is made.
func (c *Client) Send(ctx context.Context, message string) (chat.Reply, error) {
	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return chat.Reply{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return chat.Reply{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return chat.Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return chat.Reply{}, readHTTPError(resp)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return chat.Reply{}, fmt.Errorf("decode response: %w", err)
	}
	return chat.Reply{Response: chatResp.Response}, nil
}

// readHTTPError builds the error for a failed status. An unreadable or
// non-JSON body falls back to the generic status message.
func readHTTPError(resp *http.Response) error {
	var errResp ErrorResponse
	if data, err := io.ReadAll(resp.Body); err == nil {
		if err := json.Unmarshal(data, &errResp); err != nil {
			errResp = ErrorResponse{}
		}
	}
	return &HTTPError{
		Status: resp.StatusCode,
		Detail: errResp.DetailText(),
	}
}
