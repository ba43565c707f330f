package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/advisor/internal/domain"
)

func snapshotWith(price, prevClose float64, pe *float64) domain.StockSnapshot {
	return domain.StockSnapshot{
		Ticker:        "TEST",
		CurrentPrice:  price,
		PreviousClose: prevClose,
		PERatio:       pe,
		Currency:      "USD",
	}
}

// TestRuleBasedRecommend tests the fixed decision policy.
func TestRuleBasedRecommend(t *testing.T) {
	r := NewRuleBasedRecommender()

	tests := []struct {
		name           string
		snapshot       domain.StockSnapshot
		financials     domain.CompanyFinancials
		wantAction     domain.Action
		wantConfidence float64
	}{
		{
			name:           "low PE stable price is a buy",
			snapshot:       snapshotWith(99.5, 100, ptr(12.0)),
			wantAction:     domain.ActionBuy,
			wantConfidence: 0.7,
		},
		{
			name:           "high PE is a sell",
			snapshot:       snapshotWith(100, 100, ptr(30.0)),
			wantAction:     domain.ActionSell,
			wantConfidence: 0.6,
		},
		{
			name:           "sharp drop is a sell even without PE",
			snapshot:       snapshotWith(90, 100, nil),
			wantAction:     domain.ActionSell,
			wantConfidence: 0.6,
		},
		{
			name:           "low PE but falling price holds",
			snapshot:       snapshotWith(97, 100, ptr(12.0)),
			wantAction:     domain.ActionHold,
			wantConfidence: 0.5,
		},
		{
			name:           "mid PE flat price holds",
			snapshot:       snapshotWith(100, 100, ptr(20.0)),
			wantAction:     domain.ActionHold,
			wantConfidence: 0.5,
		},
		{
			name:           "no data at all holds",
			snapshot:       snapshotWith(100, 100, nil),
			wantAction:     domain.ActionHold,
			wantConfidence: 0.5,
		},
		{
			name:           "PE from financials when snapshot lacks it",
			snapshot:       snapshotWith(101, 100, nil),
			financials:     domain.CompanyFinancials{"pe_ratio": 10.0},
			wantAction:     domain.ActionBuy,
			wantConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.Recommend(tt.snapshot, tt.financials)

			assert.Equal(t, tt.wantAction, rec.Action)
			assert.Equal(t, tt.wantConfidence, rec.Confidence)
			assert.Equal(t, domain.RiskMedium, rec.RiskLevel)
			assert.NotEmpty(t, rec.Reasoning)
			assert.Equal(t, "TEST", rec.Ticker)
		})
	}
}

// TestRuleBasedDeterministic tests that identical inputs always produce
// the same decision.
func TestRuleBasedDeterministic(t *testing.T) {
	r := NewRuleBasedRecommender()
	snapshot := snapshotWith(98, 100, ptr(14.0))

	first := r.Recommend(snapshot, nil)
	second := r.Recommend(snapshot, nil)

	assert.Equal(t, first.Action, second.Action)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Reasoning, second.Reasoning)
}
