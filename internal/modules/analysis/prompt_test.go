package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/advisor/internal/domain"
)

// TestBuildPromptRequestsParserLabels tests that the response format block
// asks for every label the parser recognizes. If this breaks, model
// responses silently fall through to defaults.
func TestBuildPromptRequestsParserLabels(t *testing.T) {
	prompt := BuildPrompt(snapshotWith(100, 98, ptr(18.0)), nil, nil)

	labels := []string{
		labelRecommendation,
		labelConfidence,
		labelRiskLevel,
		labelTargetPrice,
		labelStopLoss,
		labelReasoning,
		labelSimpleSummary,
		labelCurrencyImpact,
	}

	for _, label := range labels {
		assert.Contains(t, prompt, label)
	}
}

// TestBuildPromptStockData tests that snapshot values appear in the prompt.
func TestBuildPromptStockData(t *testing.T) {
	snapshot := domain.StockSnapshot{
		Ticker:        "AAPL",
		CurrentPrice:  150.25,
		PreviousClose: 148.00,
		Currency:      "USD",
	}
	financials := domain.CompanyFinancials{
		"sector":              "Technology",
		"industry":            "Consumer Electronics",
		"market_cap_category": "Mega Cap",
		"profit_margin":       0.25,
	}

	prompt := BuildPrompt(snapshot, financials, nil)

	assert.Contains(t, prompt, "AAPL")
	assert.Contains(t, prompt, "150.25")
	assert.Contains(t, prompt, "148.00")
	assert.Contains(t, prompt, "Technology")
	assert.Contains(t, prompt, "Mega Cap")
	assert.Contains(t, prompt, "No specific currency analysis provided.")
}

// TestBuildPromptMissingFields tests that absent fundamentals render as N/A.
func TestBuildPromptMissingFields(t *testing.T) {
	prompt := BuildPrompt(snapshotWith(100, 100, nil), domain.CompanyFinancials{}, nil)

	assert.Contains(t, prompt, "P/E Ratio: N/A")
	assert.Contains(t, prompt, "Business Sector: N/A")
	assert.Contains(t, prompt, "Profit Margin: N/A")
}

// TestBuildPromptCurrencyAssessment tests rendering of a currency block.
func TestBuildPromptCurrencyAssessment(t *testing.T) {
	rate := 1.0842
	assessment := &domain.CurrencyAssessment{
		CompanyCurrency:     "EUR",
		BaseCurrency:        "USD",
		RiskLevel:           domain.RiskMedium,
		ExchangeRateTrend:   domain.TrendWeakening,
		TrendImpact:         domain.ImpactNegative,
		CurrentExchangeRate: &rate,
		RiskFactors:         []string{"International sector exposure"},
		Recommendations:     []string{"Unfavorable currency trends may impact returns"},
	}

	prompt := BuildPrompt(snapshotWith(100, 100, nil), nil, assessment)

	assert.Contains(t, prompt, "Company currency: EUR (base: USD)")
	assert.Contains(t, prompt, "Currency risk level: MEDIUM")
	assert.Contains(t, prompt, "1.0842")
	assert.Contains(t, prompt, "International sector exposure")
	assert.Contains(t, prompt, "Unfavorable currency trends may impact returns")
	assert.False(t, strings.Contains(prompt, "No specific currency analysis provided."))
}
