package analysis

import (
	"time"

	"github.com/aristath/advisor/internal/domain"
)

// Decision thresholds for the rule-based fallback path.
const (
	lowPERatio        = 15.0
	highPERatio       = 25.0
	stablePriceChange = -2.0
	sharpPriceDrop    = -5.0
)

// RuleBasedRecommender produces a recommendation from numeric signals
// only. It is the deterministic baseline used when no model is consulted
// and the fallback when a model call fails. Identical inputs always
// produce an identical decision.
type RuleBasedRecommender struct{}

// NewRuleBasedRecommender creates the fallback recommender.
func NewRuleBasedRecommender() *RuleBasedRecommender {
	return &RuleBasedRecommender{}
}

// Recommend applies the fixed decision policy, first match wins:
//  1. P/E below 15 with a stable price -> BUY
//  2. P/E above 25, or a drop sharper than -5% -> SELL
//  3. Otherwise -> HOLD
//
// Risk is always MEDIUM on this path; the rule engine does not attempt
// risk differentiation.
func (r *RuleBasedRecommender) Recommend(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) domain.Recommendation {
	priceChange := snapshot.PriceChangePercent()
	peRatio, hasPE := resolvePERatio(snapshot, financials)

	var action domain.Action
	var confidence float64
	var reasoning string

	switch {
	case hasPE && peRatio < lowPERatio && priceChange > stablePriceChange:
		action = domain.ActionBuy
		confidence = 0.7
		reasoning = "Low P/E ratio and stable price suggests good value"
	case (hasPE && peRatio > highPERatio) || priceChange < sharpPriceDrop:
		action = domain.ActionSell
		confidence = 0.6
		reasoning = "High P/E ratio or significant price drop suggests caution"
	default:
		action = domain.ActionHold
		confidence = 0.5
		reasoning = "Mixed signals suggest holding current position"
	}

	return domain.Recommendation{
		Ticker:      snapshot.Ticker,
		Action:      action,
		Confidence:  confidence,
		Reasoning:   reasoning,
		RiskLevel:   domain.RiskMedium,
		GeneratedAt: time.Now().UTC(),
	}
}

// resolvePERatio reads the P/E ratio from the snapshot first, falling
// back to the financials record.
func resolvePERatio(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) (float64, bool) {
	if snapshot.PERatio != nil {
		return *snapshot.PERatio, true
	}
	return financials.Float("pe_ratio")
}
