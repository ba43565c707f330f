// Package server provides the HTTP server and routing for the advisor API.
package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleRoot describes the service and its endpoints
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"service": "advisor",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"analyze":         "POST /api/trading/analyze",
			"recommendations": "GET /api/trading/recommendations/{ticker}",
			"currency_impact": "POST /api/currency/impact",
			"exchange_rate":   "GET /api/currency/rate/{from}/{to}",
			"health":          "GET /api/health",
		},
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "advisor",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleHealthDetailed reports per-component status
func (s *Server) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	modelStatus := "disabled"
	if s.cfg.ModelEnabled() {
		modelStatus = "configured"
	}

	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]interface{}{
			"api":         "healthy",
			"model":       modelStatus,
			"market_data": "healthy",
		},
		"config": map[string]interface{}{
			"model":            s.cfg.Model,
			"default_currency": s.cfg.DefaultCurrency,
			"dev_mode":         s.cfg.DevMode,
		},
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
