package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trading analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trading", func(r chi.Router) {
		r.Post("/analyze", h.HandleAnalyze)
		r.Get("/recommendations/{ticker}", h.HandleGetRecommendation)
	})
}
