package analysis

import "github.com/aristath/advisor/internal/domain"

// Sentiment categories.
const (
	SentimentVeryBullish = "Very Bullish"
	SentimentBullish     = "Bullish"
	SentimentNeutral     = "Neutral"
	SentimentBearish     = "Bearish"
	SentimentVeryBearish = "Very Bearish"
)

// Sentiment scoring thresholds.
const (
	strongMoveThreshold   = 2.0  // percent
	volumeSpikeMultiplier = 1.5  // of average volume
	profitMarginBonus     = 0.10 // profit margin above this adds a point
	returnOnEquityBonus   = 0.15 // ROE above this adds a point
)

// ScoreSentiment aggregates price momentum, volume confirmation, and
// profitability signals into one categorical sentiment. Momentum checks
// the largest threshold first so the contributions stay mutually
// exclusive.
func ScoreSentiment(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) string {
	priceChange := snapshot.PriceChangePercent()

	score := 0
	switch {
	case priceChange > strongMoveThreshold:
		score += 2
	case priceChange > 0:
		score++
	case priceChange < -strongMoveThreshold:
		score -= 2
	case priceChange < 0:
		score--
	}

	// Volume confirmation only applies when both volumes are known and
	// today's volume is a genuine spike.
	if snapshot.Volume != nil {
		if avgVolume, ok := financials.Float("avg_volume"); ok && avgVolume > 0 {
			if float64(*snapshot.Volume) > avgVolume*volumeSpikeMultiplier {
				if priceChange > 0 {
					score++
				} else {
					score--
				}
			}
		}
	}

	if profitMargin, ok := financials.Float("profit_margin"); ok && profitMargin > profitMarginBonus {
		score++
	}

	if roe, ok := financials.Float("return_on_equity"); ok && roe > returnOnEquityBonus {
		score++
	}

	switch {
	case score >= 3:
		return SentimentVeryBullish
	case score >= 1:
		return SentimentBullish
	case score <= -3:
		return SentimentVeryBearish
	case score <= -1:
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}
