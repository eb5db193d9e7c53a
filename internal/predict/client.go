package predict

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

	"github.com/google/uuid"

	"github.com/abhisek/cropcast/internal/form"
)

const (
	predictPath = "predict"
	healthPath  = "health"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20

	// maxErrorBodyLen caps a plain-text error body used as a message.
	maxErrorBodyLen = 200

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Client talks to the remote prediction service over HTTP.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
	newID     func() string
}

var _ Predictor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRequestIDFunc overrides how request ids are generated.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		c.newID = fn
	}
}

// NewClient creates a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http or https URL", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict sends req to POST /predict and classifies the outcome.
func (c *Client) Predict(ctx context.Context, req form.Request) ([]Prediction, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, predictPath, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, serverError(status, body)
	}
	return decodeResponse(body)
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	status, body, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, serverError(status, body)
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return 0, nil, fmt.Errorf("build URL: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, RequestIDFrom(ctx, c.newID))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	return resp.StatusCode, body, nil
}

// serverError builds a *ServerError preferring the service's own message,
// then a short plain-text body, then the HTTP status text.
func serverError(status int, body []byte) *ServerError {
	msg := errorMessageFrom(body)
	if msg == "" {
		text := strings.TrimSpace(string(body))
		if text != "" && len(text) <= maxErrorBodyLen && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
			msg = text
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &ServerError{StatusCode: status, Message: msg}
}
