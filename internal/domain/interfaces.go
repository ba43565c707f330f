package domain

import "context"

// ModelCaller is the injected model-call capability. Implementations send a
// prepared prompt to an external language model and return its raw text.
// The engine treats the call as opaque: it either yields text or fails.
// Cancellation and retries are the implementation's concern.
type ModelCaller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// RateProvider supplies a point-in-time exchange rate for a currency pair.
// Used as an optional enrichment by the currency analyzer.
type RateProvider interface {
	GetRate(fromCurrency, toCurrency string) (float64, error)
}

// MarketDataProvider supplies snapshots and fundamentals for a ticker.
// A provider that has no data for a ticker returns DataUnavailableError.
type MarketDataProvider interface {
	GetSnapshot(ctx context.Context, ticker string) (*StockSnapshot, error)
	GetFinancials(ctx context.Context, ticker string) (CompanyFinancials, error)
}
