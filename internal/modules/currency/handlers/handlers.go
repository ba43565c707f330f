// Package handlers provides HTTP handlers for currency operations.
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
	"github.com/aristath/advisor/internal/modules/currency"
)

// Handler handles currency HTTP requests
type Handler struct {
	analyzer *currency.Analyzer
	data     domain.MarketDataProvider
	rates    domain.RateProvider
	log      zerolog.Logger
}

// NewHandler creates a new currency handler
func NewHandler(analyzer *currency.Analyzer, data domain.MarketDataProvider, rates domain.RateProvider, log zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		data:     data,
		rates:    rates,
		log:      log.With().Str("handler", "currency").Logger(),
	}
}

// ImpactRequest represents a request to assess currency impact for a ticker
type ImpactRequest struct {
	Ticker       string `json:"ticker"`
	BaseCurrency string `json:"base_currency"`
}

// HandleImpact handles POST /api/currency/impact
func (h *Handler) HandleImpact(w http.ResponseWriter, r *http.Request) {
	var req ImpactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	baseCurrency := req.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	financials, err := h.data.GetFinancials(r.Context(), ticker)
	if err != nil {
		if domain.IsDataUnavailable(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to fetch financials")
		http.Error(w, "Error analyzing currency impact", http.StatusInternalServerError)
		return
	}

	companyCurrency, _ := financials.String("currency")
	if companyCurrency == "" {
		companyCurrency = "USD"
	}

	assessment := h.analyzer.Assess(financials, companyCurrency, baseCurrency)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"ticker":            ticker,
			"company_currency":  companyCurrency,
			"base_currency":     baseCurrency,
			"currency_analysis": assessment,
		},
		"metadata": map[string]any{
			"timestamp":  time.Now().Format(time.RFC3339),
			"request_id": uuid.NewString(),
		},
	})
}

// HandleGetRate handles GET /api/currency/rate/{from}/{to}
func (h *Handler) HandleGetRate(w http.ResponseWriter, r *http.Request) {
	fromCurrency := strings.ToUpper(chi.URLParam(r, "from"))
	toCurrency := strings.ToUpper(chi.URLParam(r, "to"))

	if fromCurrency == "" || toCurrency == "" {
		http.Error(w, "from and to currencies are required", http.StatusBadRequest)
		return
	}

	rate, err := h.rates.GetRate(fromCurrency, toCurrency)
	if err != nil {
		h.log.Warn().Err(err).Str("from", fromCurrency).Str("to", toCurrency).Msg("Failed to get exchange rate")
		http.Error(w, "Exchange rate not available", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"from_currency": fromCurrency,
			"to_currency":   toCurrency,
			"rate":          rate,
		},
		"metadata": map[string]any{
			"timestamp":  time.Now().Format(time.RFC3339),
			"request_id": uuid.NewString(),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
