package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fast backoff and a generous per-attempt timeout so retry tests stay quick.
const (
	testBackoff = time.Millisecond
	testTimeout = 5 * time.Second
)

func TestGetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bar", r.URL.Query().Get("foo"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := New(4, testBackoff, testTimeout)
	params := url.Values{}
	params.Set("foo", "bar")

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, params, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])
}

func TestGetJSON_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	headers := http.Header{}
	headers.Set("X-Api-Key", "secret")

	var out map[string]any
	err := New(1, testBackoff, testTimeout).GetJSON(context.Background(), server.URL, nil, headers, &out)
	require.NoError(t, err)
}

func TestGetJSON_RetriesServerErrorsThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := New(4, testBackoff, testTimeout)

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, "ok", out["status"])
}

func TestGetJSON_ExhaustsRetryBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(4, testBackoff, testTimeout)

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, int32(4), calls.Load())
}

func TestGetJSON_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(4, testBackoff, testTimeout)

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)

	require.Error(t, err)
	var rejected *domain.ProviderStatusError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusForbidden, rejected.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx must be terminal, no retries")
}

func TestGetJSON_ConnectionFailureIsRetried(t *testing.T) {
	// A server that is immediately closed yields connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(2, testBackoff, testTimeout)

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGetJSON_ContextCancelStopsRetrying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(4, time.Second, testTimeout)

	var out map[string]string
	err := client.GetJSON(ctx, server.URL, nil, nil, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetJSON_StalledAttemptTimesOutAndRetries(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(3, testBackoff, 30*time.Millisecond)

	var out map[string]string
	err := client.GetJSON(context.Background(), server.URL, nil, nil, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, int32(3), calls.Load(), "each stalled attempt must time out on its own and leave the budget for the next")
}

func TestBackoffDoubles(t *testing.T) {
	client := New(4, 350*time.Millisecond, testTimeout)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 350 * time.Millisecond},
		{1, 700 * time.Millisecond},
		{2, 1400 * time.Millisecond},
		{3, 2800 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, client.backoff(tt.attempt))
	}
}

func TestNew_ClampsRetryBudget(t *testing.T) {
	client := New(0, testBackoff, testTimeout)
	assert.Equal(t, 1, client.maxRetries)
}
