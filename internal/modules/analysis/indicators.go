package analysis

import (
	"math"

	"github.com/aristath/advisor/internal/domain"
)

// Category boundaries for derived indicator labels.
const (
	leverageLowBound  = 0.3
	leverageHighBound = 0.7
)

// ComputeIndicators derives the named technical indicators available from
// a snapshot and financials record. Indicators whose source data is
// missing are omitted entirely, never emitted as null placeholders.
func ComputeIndicators(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) map[string]any {
	indicators := map[string]any{
		"price_change_percent": round2(snapshot.PriceChangePercent()),
	}

	if snapshot.PERatio != nil {
		pe := *snapshot.PERatio
		indicators["pe_ratio"] = pe
		indicators["pe_category"] = peCategory(pe)
	}

	if marketCap, ok := financials.Float("market_cap"); ok && marketCap > 0 {
		indicators["market_cap"] = marketCap
		category, _ := financials.String("market_cap_category")
		if category == "" {
			category = "Unknown"
		}
		indicators["market_cap_category"] = category
	}

	if debtToEquity, ok := financials.Float("debt_to_equity"); ok && debtToEquity != 0 {
		indicators["debt_to_equity"] = debtToEquity
		indicators["leverage_level"] = leverageLevel(debtToEquity)
	}

	return indicators
}

func peCategory(pe float64) string {
	switch {
	case pe < lowPERatio:
		return "Low"
	case pe > highPERatio:
		return "High"
	default:
		return "Medium"
	}
}

func leverageLevel(debtToEquity float64) string {
	switch {
	case debtToEquity < leverageLowBound:
		return "Low"
	case debtToEquity > leverageHighBound:
		return "High"
	default:
		return "Medium"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
