// Package exchangerate provides currency exchange rate fetching and caching functionality.
package exchangerate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client for exchangerate-api.com
type Client struct {
	baseURL  string
	client   *http.Client
	log      zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	rate      float64
	expiresAt time.Time
}

// NewClient creates a new exchangerate-api.com client. Fetched rates are
// cached in memory for cacheTTL.
func NewClient(cacheTTL time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  "https://api.exchangerate-api.com/v4/latest",
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log.With().Str("client", "exchangerate-api").Logger(),
		cacheTTL: cacheTTL,
		cache:    make(map[string]cacheEntry),
	}
}

// GetRate fetches an exchange rate with caching.
// If the API fails, returns stale cached data if available (stale data > no data).
func (c *Client) GetRate(fromCurrency, toCurrency string) (float64, error) {
	if fromCurrency == toCurrency {
		return 1.0, nil
	}

	cacheKey := fromCurrency + ":" + toCurrency

	if rate, ok := c.getFresh(cacheKey); ok {
		c.log.Debug().
			Str("from", fromCurrency).
			Str("to", toCurrency).
			Float64("rate", rate).
			Msg("Cache hit")
		return rate, nil
	}

	rate, err := c.fetch(fromCurrency, toCurrency)
	if err != nil {
		if staleRate, ok := c.getStale(cacheKey); ok {
			c.log.Warn().Err(err).
				Str("from", fromCurrency).
				Str("to", toCurrency).
				Float64("rate", staleRate).
				Msg("API failed, using stale cached rate")
			return staleRate, nil
		}
		return 0, err
	}

	c.store(cacheKey, rate)

	c.log.Info().
		Str("from", fromCurrency).
		Str("to", toCurrency).
		Float64("rate", rate).
		Msg("Fetched rate")

	return rate, nil
}

// Refresh re-fetches the given pairs, warming the cache. Used by the
// scheduled rate refresh job. Cached entries are only replaced on a
// successful fetch, so a refresh during an API outage cannot erase the
// stale-on-failure fallback.
func (c *Client) Refresh(pairs [][2]string) {
	for _, pair := range pairs {
		rate, err := c.fetch(pair[0], pair[1])
		if err != nil {
			c.log.Warn().Err(err).
				Str("from", pair[0]).
				Str("to", pair[1]).
				Msg("Rate refresh failed")
			continue
		}
		c.store(pair[0]+":"+pair[1], rate)
	}
}

// fetch performs one uncached API request for a currency pair.
func (c *Client) fetch(fromCurrency, toCurrency string) (float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, fromCurrency)
	c.log.Debug().Str("url", url).Msg("Fetching rates")

	resp, err := c.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	rate, exists := result.Rates[toCurrency]
	if !exists {
		return 0, fmt.Errorf("rate not found for %s->%s", fromCurrency, toCurrency)
	}

	return rate, nil
}

func (c *Client) getFresh(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.rate, true
}

// getStale retrieves a cached rate even if expired.
// Use this as a fallback when API calls fail - stale data is better than no data.
func (c *Client) getStale(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok {
		return 0, false
	}
	return entry.rate, true
}

func (c *Client) store(key string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{rate: rate, expiresAt: time.Now().Add(c.cacheTTL)}
}
