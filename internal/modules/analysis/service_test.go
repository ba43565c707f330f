package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

// fakeDataProvider is a scripted MarketDataProvider for service tests.
type fakeDataProvider struct {
	snapshot      *domain.StockSnapshot
	snapshotErr   error
	financials    domain.CompanyFinancials
	financialsErr error
}

func (f *fakeDataProvider) GetSnapshot(ctx context.Context, ticker string) (*domain.StockSnapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.snapshot, nil
}

func (f *fakeDataProvider) GetFinancials(ctx context.Context, ticker string) (domain.CompanyFinancials, error) {
	if f.financialsErr != nil {
		return nil, f.financialsErr
	}
	return f.financials, nil
}

// TestAnalyzeTickerHappyPath tests an end-to-end service run.
func TestAnalyzeTickerHappyPath(t *testing.T) {
	snapshot := snapshotWith(101, 100, ptr(12.0))
	data := &fakeDataProvider{
		snapshot:   &snapshot,
		financials: domain.CompanyFinancials{"currency": "USD", "sector": "Technology"},
	}
	svc := NewService(data, newTestOrchestrator(nil), "USD", zerolog.Nop())

	result, err := svc.AnalyzeTicker(context.Background(), "TEST", "", true)

	require.NoError(t, err)
	assert.Equal(t, "TEST", result.Ticker)
	assert.Equal(t, domain.ActionBuy, result.Recommendation.Action)
	require.NotNil(t, result.CurrencyAssessment)
	assert.Equal(t, "USD", result.CurrencyAssessment.BaseCurrency)
}

// TestAnalyzeTickerSnapshotError tests that missing market data propagates.
func TestAnalyzeTickerSnapshotError(t *testing.T) {
	data := &fakeDataProvider{snapshotErr: domain.DataUnavailableError{Ticker: "NOPE"}}
	svc := NewService(data, newTestOrchestrator(nil), "USD", zerolog.Nop())

	result, err := svc.AnalyzeTicker(context.Background(), "NOPE", "", true)

	assert.Nil(t, result)
	assert.True(t, domain.IsDataUnavailable(err))
}

// TestAnalyzeTickerFinancialsErrorDegrades tests that a failing financials
// fetch does not block the analysis.
func TestAnalyzeTickerFinancialsErrorDegrades(t *testing.T) {
	snapshot := snapshotWith(100, 100, nil)
	data := &fakeDataProvider{
		snapshot:      &snapshot,
		financialsErr: errors.New("upstream down"),
	}
	svc := NewService(data, newTestOrchestrator(nil), "USD", zerolog.Nop())

	result, err := svc.AnalyzeTicker(context.Background(), "TEST", "EUR", true)

	require.NoError(t, err)
	assert.Equal(t, domain.ActionHold, result.Recommendation.Action)
	require.NotNil(t, result.CurrencyAssessment)
	assert.Equal(t, "EUR", result.CurrencyAssessment.BaseCurrency)
}
