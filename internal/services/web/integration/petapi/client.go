// Package petapi is the HTTP client for the remote pet adoption API.
package petapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	json "github.com/goccy/go-json"
	"github.com/louisbranch/pawprint/internal/platform/requestctx"
	"github.com/louisbranch/pawprint/internal/platform/timeouts"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit  = 20
	defaultBurst      = 10
	defaultMaxRetries = 3
	maxErrorBody      = 4 << 10
	idempotencyHeader = "Idempotency-Key"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds each attempt. Defaults to timeouts.APIRequest.
	Timeout time.Duration
	// RateLimit is the sustained requests per second across all callers.
	RateLimit float64
	Burst     int
	// MaxRetries bounds extra attempts for idempotent reads.
	MaxRetries int
	Logger     *log.Logger
	// NewBackOff overrides the retry schedule; tests use a zero backoff.
	NewBackOff func() backoff.BackOff
}

// Client calls the remote API. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	maxRetries int
	logger     *log.Logger
	newBackOff func() backoff.BackOff
}

// New validates options and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, errors.New("petapi: base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("petapi: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("petapi: base url scheme %q is not http(s)", base.Scheme)
	}

	client := &Client{
		baseURL:    base,
		http:       opts.HTTPClient,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		logger:     opts.Logger,
		newBackOff: opts.NewBackOff,
	}
	if client.http == nil {
		client.http = &http.Client{}
	}
	if client.timeout <= 0 {
		client.timeout = timeouts.APIRequest
	}
	if client.maxRetries < 0 {
		client.maxRetries = 0
	} else if client.maxRetries == 0 {
		client.maxRetries = defaultMaxRetries
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	if client.newBackOff == nil {
		client.newBackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		}
	}
	limit, burst := opts.RateLimit, opts.Burst
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	client.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	return client, nil
}

// StatusError is a non-2xx response from the remote API.
type StatusError struct {
	Method string
	Path   string
	Status int
	// Message is the API's error text when the body carried one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("petapi: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("petapi: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// StatusCode returns the HTTP status of the failed response.
func (e *StatusError) StatusCode() int { return e.Status }

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// idempotencyKey is sent on creates so a retried submit is recognizable.
	idempotencyKey string
}

// do sends req and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	body, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("petapi: decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// send runs the request, retrying GETs on transport failures and 5xx.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	var payload []byte
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("petapi: encode %s %s: %w", req.method, req.path, err)
		}
		payload = encoded
	}

	retries := 0
	if req.method == http.MethodGet {
		retries = c.maxRetries
	}
	schedule := c.newBackOff()
	schedule.Reset()

	for attempt := 0; ; attempt++ {
		body, retryable, err := c.attempt(ctx, req, payload)
		if err == nil {
			return body, nil
		}
		if !retryable || attempt >= retries {
			return nil, err
		}
		sleep := schedule.NextBackOff()
		if sleep == backoff.Stop {
			return nil, err
		}
		c.logger.Printf("petapi: retry method=%s path=%s attempt=%d user_id=%s err=%v", req.method, req.path, attempt+1, requestctx.UserIDFromContext(ctx), err)
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) attempt(ctx context.Context, req request, payload []byte) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("petapi: rate limit: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), reader)
	if err != nil {
		return nil, false, fmt.Errorf("petapi: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := requestctx.BearerTokenFromContext(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if req.idempotencyKey != "" {
		httpReq.Header.Set(idempotencyHeader, req.idempotencyKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		// Caller cancellation is final; everything else is a transport failure.
		return nil, ctx.Err() == nil || errors.Is(err, context.DeadlineExceeded), fmt.Errorf("petapi: %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{Method: req.method, Path: req.path, Status: resp.StatusCode, Message: errorMessage(raw)}
		return nil, resp.StatusCode >= 500, statusErr
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("petapi: read %s %s: %w", req.method, req.path, err)
	}
	return body, false, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := strings.TrimRight(c.baseURL.String(), "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// errorMessage extracts {"error": "..."} or {"message": "..."} bodies.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
