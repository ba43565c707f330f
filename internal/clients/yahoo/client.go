// Package yahoo fetches stock snapshots and company fundamentals from
// Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

const quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s"

// Client is the market data provider. Quotes come from the finance-go
// quote API; fundamentals from the quoteSummary endpoint. Results are
// cached in memory to keep repeated analyses of the same ticker cheap.
type Client struct {
	http     *resty.Client
	log      zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheItem
}

type cacheItem struct {
	value     any
	expiresAt time.Time
}

// NewClient creates a Yahoo Finance client.
func NewClient(cacheTTL time.Duration, log zerolog.Logger) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(15 * time.Second)
	httpClient.SetHeader("User-Agent", "Mozilla/5.0 (compatible; advisor/1.0)")

	return &Client{
		http:     httpClient,
		log:      log.With().Str("client", "yahoo").Logger(),
		cacheTTL: cacheTTL,
		cache:    make(map[string]cacheItem),
	}
}

// GetSnapshot fetches the current quote for a ticker. An unknown ticker
// or an empty quote yields DataUnavailableError.
func (c *Client) GetSnapshot(ctx context.Context, ticker string) (*domain.StockSnapshot, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, domain.DataUnavailableError{Ticker: ticker}
	}

	cacheKey := "snapshot:" + ticker
	if cached, ok := c.getFromCache(cacheKey); ok {
		snapshot := cached.(domain.StockSnapshot)
		return &snapshot, nil
	}

	q, err := equity.Get(ticker)
	if err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("Quote fetch failed")
		return nil, domain.DataUnavailableError{Ticker: ticker}
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		c.log.Warn().Str("ticker", ticker).Msg("No quote data for ticker")
		return nil, domain.DataUnavailableError{Ticker: ticker}
	}

	snapshot := buildSnapshot(ticker, q)
	c.setCache(cacheKey, snapshot)

	c.log.Debug().
		Str("ticker", ticker).
		Float64("price", snapshot.CurrentPrice).
		Str("currency", snapshot.Currency).
		Msg("Fetched snapshot")

	return &snapshot, nil
}

func buildSnapshot(ticker string, q *finance.Equity) domain.StockSnapshot {
	previousClose := q.RegularMarketPreviousClose
	if previousClose <= 0 {
		previousClose = q.RegularMarketPrice
	}

	currencyCode := q.CurrencyID
	if currencyCode == "" {
		currencyCode = "USD"
	}

	snapshot := domain.StockSnapshot{
		Ticker:        ticker,
		CurrentPrice:  q.RegularMarketPrice,
		PreviousClose: previousClose,
		Currency:      currencyCode,
		CapturedAt:    time.Now().UTC(),
	}

	if q.MarketCap > 0 {
		marketCap := float64(q.MarketCap)
		snapshot.MarketCap = &marketCap
	}
	if q.RegularMarketVolume > 0 {
		volume := int64(q.RegularMarketVolume)
		snapshot.Volume = &volume
	}
	if q.TrailingPE > 0 {
		pe := q.TrailingPE
		snapshot.PERatio = &pe
	}

	return snapshot
}

// yahooValue is Yahoo's {raw, fmt} number wrapper.
type yahooValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
				Country  string `json:"country"`
			} `json:"assetProfile"`
			FinancialData struct {
				ProfitMargins    yahooValue `json:"profitMargins"`
				OperatingMargins yahooValue `json:"operatingMargins"`
				ReturnOnEquity   yahooValue `json:"returnOnEquity"`
				DebtToEquity     yahooValue `json:"debtToEquity"`
				CurrentRatio     yahooValue `json:"currentRatio"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				Beta yahooValue `json:"beta"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// GetFinancials fetches company fundamentals as a sparse record. A ticker
// with no profile data still yields a partially-populated record - the
// engine tolerates absent fields, so this method only fails on a missing
// quote.
func (c *Client) GetFinancials(ctx context.Context, ticker string) (domain.CompanyFinancials, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	cacheKey := "financials:" + ticker
	if cached, ok := c.getFromCache(cacheKey); ok {
		return cached.(domain.CompanyFinancials), nil
	}

	q, err := equity.Get(ticker)
	if err != nil || q == nil {
		return nil, domain.DataUnavailableError{Ticker: ticker}
	}

	financials := domain.CompanyFinancials{}

	if name := q.LongName; name != "" {
		financials["company_name"] = name
	} else if q.ShortName != "" {
		financials["company_name"] = q.ShortName
	}
	if q.CurrencyID != "" {
		financials["currency"] = q.CurrencyID
	}
	if q.MarketCap > 0 {
		financials["market_cap"] = float64(q.MarketCap)
		financials["market_cap_category"] = CategorizeMarketCap(float64(q.MarketCap))
	}
	if q.TrailingPE > 0 {
		financials["pe_ratio"] = q.TrailingPE
	}
	if q.ForwardPE > 0 {
		financials["forward_pe"] = q.ForwardPE
	}
	if q.TrailingAnnualDividendYield > 0 {
		financials["dividend_yield"] = q.TrailingAnnualDividendYield
	}
	if q.FiftyTwoWeekHigh > 0 {
		financials["52_week_high"] = q.FiftyTwoWeekHigh
	}
	if q.FiftyTwoWeekLow > 0 {
		financials["52_week_low"] = q.FiftyTwoWeekLow
	}
	if q.AverageDailyVolume3Month > 0 {
		financials["avg_volume"] = float64(q.AverageDailyVolume3Month)
	}

	c.mergeProfile(ctx, ticker, financials)

	c.setCache(cacheKey, financials)
	return financials, nil
}

// mergeProfile enriches the financials record with sector, country, and
// ratio data from the quoteSummary endpoint. Failures here are logged and
// swallowed: fundamentals are optional everywhere downstream.
func (c *Client) mergeProfile(ctx context.Context, ticker string, financials domain.CompanyFinancials) {
	var summary quoteSummaryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("modules", "assetProfile,financialData,defaultKeyStatistics").
		SetResult(&summary).
		Get(fmt.Sprintf(quoteSummaryURL, ticker))

	if err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("Profile fetch failed")
		return
	}
	if resp.StatusCode() != 200 {
		c.log.Warn().Int("status", resp.StatusCode()).Str("ticker", ticker).Msg("Profile fetch returned error status")
		return
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return
	}

	result := summary.QuoteSummary.Result[0]

	if result.AssetProfile.Sector != "" {
		financials["sector"] = result.AssetProfile.Sector
	}
	if result.AssetProfile.Industry != "" {
		financials["industry"] = result.AssetProfile.Industry
	}
	if result.AssetProfile.Country != "" {
		financials["country"] = result.AssetProfile.Country
	}
	if v := result.FinancialData.ProfitMargins.Raw; v != 0 {
		financials["profit_margin"] = v
	}
	if v := result.FinancialData.OperatingMargins.Raw; v != 0 {
		financials["operating_margin"] = v
	}
	if v := result.FinancialData.ReturnOnEquity.Raw; v != 0 {
		financials["return_on_equity"] = v
	}
	if v := result.FinancialData.DebtToEquity.Raw; v != 0 {
		financials["debt_to_equity"] = v
	}
	if v := result.FinancialData.CurrentRatio.Raw; v != 0 {
		financials["current_ratio"] = v
	}
	if v := result.DefaultKeyStatistics.Beta.Raw; v != 0 {
		financials["beta"] = v
	}
}

func (c *Client) getFromCache(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.cache[key]
	if !ok || time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

func (c *Client) setCache(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheItem{value: value, expiresAt: time.Now().Add(c.cacheTTL)}
}
