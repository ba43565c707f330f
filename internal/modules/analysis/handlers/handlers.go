// Package handlers provides HTTP handlers for trading analysis operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/analysis"
)

// Handler handles trading analysis HTTP requests
type Handler struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(service *analysis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

// AnalyzeRequest represents a request to analyze a ticker
type AnalyzeRequest struct {
	Ticker                  string `json:"ticker"`
	BaseCurrency            string `json:"base_currency"`
	IncludeCurrencyAnalysis *bool  `json:"include_currency_analysis"`
}

// HandleAnalyze handles POST /api/trading/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "Ticker symbol is required", http.StatusBadRequest)
		return
	}

	// Currency analysis is included unless explicitly disabled.
	includeCurrency := true
	if req.IncludeCurrencyAnalysis != nil {
		includeCurrency = *req.IncludeCurrencyAnalysis
	}

	result, err := h.service.AnalyzeTicker(r.Context(), ticker, req.BaseCurrency, includeCurrency)
	if err != nil {
		h.respondError(w, ticker, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(result))
}

// HandleGetRecommendation handles GET /api/trading/recommendations/{ticker}
func (h *Handler) HandleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticker")))
	if ticker == "" {
		http.Error(w, "Ticker symbol is required", http.StatusBadRequest)
		return
	}

	baseCurrency := r.URL.Query().Get("base_currency")

	result, err := h.service.AnalyzeTicker(r.Context(), ticker, baseCurrency, true)
	if err != nil {
		h.respondError(w, ticker, err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]any{
		"ticker":            result.Ticker,
		"recommendation":    result.Recommendation,
		"currency_analysis": result.CurrencyAssessment,
		"market_sentiment":  result.MarketSentiment,
	}))
}

// respondError maps service errors to HTTP statuses. Missing market data
// is the caller's problem (404); anything else is ours (500).
func (h *Handler) respondError(w http.ResponseWriter, ticker string, err error) {
	if domain.IsDataUnavailable(err) {
		h.log.Warn().Err(err).Str("ticker", ticker).Msg("No data for ticker")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.log.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
	http.Error(w, "Internal server error during analysis", http.StatusInternalServerError)
}

// envelope wraps a payload in the standard data/metadata response shape.
func envelope(data any) map[string]any {
	return map[string]any{
		"data": data,
		"metadata": map[string]any{
			"timestamp":  time.Now().Format(time.RFC3339),
			"request_id": uuid.NewString(),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
