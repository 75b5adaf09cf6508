// Package api is the panel's transport to the trading bot REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rovshanmuradov/botpanel/internal/status"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is where the bot API listens unless configured otherwise.
	DefaultBaseURL = "http://localhost:8080"

	maxErrorBody = 64 << 10
)

// Client performs JSON requests against the bot API. Every failure is
// reported to the status reporter exactly once and then returned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	reporter   status.Reporter
	observer   Observer
	logger     *zap.Logger
}

// Observer is told about every finished request. status is 0 when no
// response arrived.
type Observer interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, time.Duration, error) {}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient uses a copy of hc, keeping the client's timeout when hc
// has none. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = c.httpClient.Timeout
		}
		c.httpClient = &cp
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		cp := *c.httpClient
		cp.Timeout = timeout
		c.httpClient = &cp
	}
}

// WithObserver installs a request observer, e.g. a metrics recorder.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger.Named("api")
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, reporter status.Reporter, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if reporter == nil {
		reporter = status.ReporterFunc(func(string) {})
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		reporter:   reporter,
		observer:   nopObserver{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request to path (which may carry an encoded query) and decodes
// a successful response body into out. A nil out discards the body.
func (c *Client) Do(ctx context.Context, method, path string, out any) error {
	start := time.Now()
	code, err := c.do(ctx, method, path, out)
	c.observer.ObserveRequest(method, path, code, time.Since(start), err)
	if err != nil {
		c.reporter.Report(err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, out any) (int, error) {
	requestID := uuid.New().String()
	logger := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, &Error{Method: method, Path: path, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("Request failed", zap.Error(err))
		return 0, &Error{Method: method, Path: path, Message: networkMessage(err), Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("Response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &Error{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: resolveMessage(resp.StatusCode, body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &Error{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
			Err:     err,
		}
	}
	return resp.StatusCode, nil
}

func networkMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return err.Error()
	}
}
