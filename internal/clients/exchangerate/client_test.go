package exchangerate

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, ttl time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(ttl, zerolog.Nop())
	c.baseURL = srv.URL
	return c
}

// TestGetRateSameCurrency tests the identity shortcut.
func TestGetRateSameCurrency(t *testing.T) {
	c := NewClient(time.Minute, zerolog.Nop())

	rate, err := c.GetRate("USD", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

// TestGetRateFetchAndCache tests that a fetched rate is served from cache
// on subsequent calls.
func TestGetRateFetchAndCache(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92,"GBP":0.79}}`))
	}, time.Minute)

	rate, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)

	rate, err = c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)

	assert.Equal(t, int32(1), hits.Load())
}

// TestGetRateStaleFallback tests that an expired cache entry is still used
// when the API starts failing.
func TestGetRateStaleFallback(t *testing.T) {
	var failing atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
	}, time.Nanosecond)

	_, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)

	failing.Store(true)
	time.Sleep(time.Millisecond)

	rate, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
}

// TestGetRateMissingRate tests the error when the pair is not in the response.
func TestGetRateMissingRate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
	}, time.Minute)

	_, err := c.GetRate("USD", "XXX")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate not found")
}

// TestGetRateAPIErrorWithoutCache tests the error path with a cold cache.
func TestGetRateAPIErrorWithoutCache(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, time.Minute)

	_, err := c.GetRate("USD", "EUR")

	assert.Error(t, err)
}

// TestRefresh tests that refresh re-fetches pairs even when cached.
func TestRefresh(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92,"GBP":0.79}}`))
	}, time.Hour)

	_, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	c.Refresh([][2]string{{"USD", "EUR"}, {"USD", "GBP"}})
	assert.Equal(t, int32(3), hits.Load())

	// Refreshed entries are fresh again.
	rate, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
	assert.Equal(t, int32(3), hits.Load())
}

// TestRefreshFailureKeepsStaleEntry tests that a failed refresh leaves the
// cached entry in place for the stale-on-failure fallback.
func TestRefreshFailureKeepsStaleEntry(t *testing.T) {
	var failing atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
	}, time.Nanosecond)

	_, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)

	failing.Store(true)
	time.Sleep(time.Millisecond)

	c.Refresh([][2]string{{"USD", "EUR"}})

	rate, err := c.GetRate("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
}
