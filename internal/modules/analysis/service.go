package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

// Service ties the market data provider to the orchestrator for one-call
// ticker analysis. Data fetching stays out of the orchestrator so the
// pipeline itself remains a pure function of already-fetched inputs.
type Service struct {
	data            domain.MarketDataProvider
	orchestrator    *Orchestrator
	defaultCurrency string
	log             zerolog.Logger
}

// NewService creates the analysis service.
func NewService(data domain.MarketDataProvider, orchestrator *Orchestrator, defaultCurrency string, log zerolog.Logger) *Service {
	return &Service{
		data:            data,
		orchestrator:    orchestrator,
		defaultCurrency: defaultCurrency,
		log:             log.With().Str("service", "analysis").Logger(),
	}
}

// AnalyzeTicker fetches market data for a ticker and runs the analysis
// pipeline. A ticker with no market data fails with DataUnavailableError;
// missing fundamentals degrade to an empty record.
func (s *Service) AnalyzeTicker(ctx context.Context, ticker, baseCurrency string, includeCurrency bool) (*domain.AnalysisResult, error) {
	if baseCurrency == "" {
		baseCurrency = s.defaultCurrency
	}

	s.log.Info().Str("ticker", ticker).Str("base_currency", baseCurrency).Msg("Starting analysis")

	snapshot, err := s.data.GetSnapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}

	financials, err := s.data.GetFinancials(ctx, ticker)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Fundamentals unavailable, continuing with empty record")
		financials = domain.CompanyFinancials{}
	}

	return s.orchestrator.Analyze(ctx, Request{
		Ticker:          snapshot.Ticker,
		BaseCurrency:    baseCurrency,
		IncludeCurrency: includeCurrency,
		Snapshot:        snapshot,
		Financials:      financials,
	})
}
