package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/analysis"
	"github.com/aristath/advisor/internal/modules/currency"
)

// fakeData serves a single ticker and rejects everything else.
type fakeData struct {
	ticker string
}

func (f *fakeData) GetSnapshot(ctx context.Context, ticker string) (*domain.StockSnapshot, error) {
	if ticker != f.ticker {
		return nil, domain.DataUnavailableError{Ticker: ticker}
	}
	pe := 12.0
	return &domain.StockSnapshot{
		Ticker:        ticker,
		CurrentPrice:  101,
		PreviousClose: 100,
		PERatio:       &pe,
		Currency:      "USD",
	}, nil
}

func (f *fakeData) GetFinancials(ctx context.Context, ticker string) (domain.CompanyFinancials, error) {
	return domain.CompanyFinancials{"currency": "USD"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	analyzer := currency.NewAnalyzer(nil, zerolog.Nop())
	orchestrator := analysis.NewOrchestrator(analyzer, nil, zerolog.Nop())
	service := analysis.NewService(&fakeData{ticker: "AAPL"}, orchestrator, "USD", zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

// TestHandleAnalyze tests the analyze endpoint happy path.
func TestHandleAnalyze(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"ticker":"aapl"}`)
	req := httptest.NewRequest(http.MethodPost, "/trading/analyze", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data     domain.AnalysisResult `json:"data"`
		Metadata map[string]string     `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "AAPL", resp.Data.Ticker)
	assert.Equal(t, domain.ActionBuy, resp.Data.Recommendation.Action)
	assert.NotNil(t, resp.Data.CurrencyAssessment)
	assert.NotEmpty(t, resp.Metadata["timestamp"])
	assert.NotEmpty(t, resp.Metadata["request_id"])
}

// TestHandleAnalyzeExcludesCurrency tests the include flag.
func TestHandleAnalyzeExcludesCurrency(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"ticker":"AAPL","include_currency_analysis":false}`)
	req := httptest.NewRequest(http.MethodPost, "/trading/analyze", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.AnalysisResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data.CurrencyAssessment)
}

// TestHandleAnalyzeValidation tests request validation failures.
func TestHandleAnalyzeValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing ticker", `{}`},
		{"blank ticker", `{"ticker":"   "}`},
		{"malformed json", `{"ticker":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/trading/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// TestHandleAnalyzeUnknownTicker tests the 404 mapping.
func TestHandleAnalyzeUnknownTicker(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/trading/analyze", strings.NewReader(`{"ticker":"NOPE"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestHandleGetRecommendation tests the GET endpoint.
func TestHandleGetRecommendation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/trading/recommendations/AAPL?base_currency=EUR", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Ticker           string                     `json:"ticker"`
			Recommendation   domain.Recommendation      `json:"recommendation"`
			CurrencyAnalysis *domain.CurrencyAssessment `json:"currency_analysis"`
			MarketSentiment  string                     `json:"market_sentiment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "AAPL", resp.Data.Ticker)
	assert.Equal(t, domain.ActionBuy, resp.Data.Recommendation.Action)
	require.NotNil(t, resp.Data.CurrencyAnalysis)
	assert.Equal(t, "EUR", resp.Data.CurrencyAnalysis.BaseCurrency)
	assert.NotEmpty(t, resp.Data.MarketSentiment)
}
