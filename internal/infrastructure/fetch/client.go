// Package fetch is the outbound transport layer: GET-a-JSON-document with
// a bounded retry budget and exponential backoff. Transient failures
// (connect/timeout/protocol errors and HTTP 5xx) are retried; any 4xx is
// a terminal provider rejection and is surfaced immediately.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/caloriehawk/backend/internal/domain"
)

const userAgent = "CalorieHawk/1.0"

// Client issues retried GET requests. Safe for concurrent use; the
// underlying http.Client pools connections across requests.
type Client struct {
	httpClient  *http.Client
	maxRetries  int
	backoffBase time.Duration
	timeout     time.Duration
}

// New creates a transport client. maxRetries is the total attempt budget
// (the first request counts as attempt one). timeout bounds each attempt
// individually, so a stalled read fails that attempt and the next one
// still runs; the caller's context remains the outer cancellation bound.
func New(maxRetries int, backoffBase, timeout time.Duration) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		timeout:     timeout,
	}
}

// NewWithHTTPClient creates a transport client on a caller-supplied
// http.Client, e.g. one with an intercepted transport in tests.
func NewWithHTTPClient(httpClient *http.Client, maxRetries int, backoffBase, timeout time.Duration) *Client {
	c := New(maxRetries, backoffBase, timeout)
	c.httpClient = httpClient
	return c
}

// GetJSON fetches rawURL with the given query params and headers and
// decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, headers http.Header, out any) error {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", rawURL, params.Encode())
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return err
			}
		}

		body, err := c.once(ctx, reqURL, headers)
		if err == nil {
			return json.Unmarshal(body, out)
		}

		var rejected *domain.ProviderStatusError
		if errors.As(err, &rejected) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.Printf("[fetch] attempt %d/%d failed: %v", attempt+1, c.maxRetries, err)
		lastErr = err
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrUpstreamUnavailable, c.maxRetries, lastErr)
}

// once issues a single request, bounded by the per-attempt timeout, and
// classifies the outcome.
func (c *Client) once(ctx context.Context, reqURL string, headers http.Header) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	for key, values := range headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection, timeout and protocol failures land here; all retryable.
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("upstream 5xx (%d)", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, &domain.ProviderStatusError{StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// backoff returns the wait before retry n: backoffBase * 2^n.
func (c *Client) backoff(n int) time.Duration {
	return c.backoffBase << uint(n)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
