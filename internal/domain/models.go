// Package domain contains the core data model for the recommendation
// synthesis engine. Types here are pure data - they carry no infrastructure
// dependencies and are immutable once constructed.
package domain

import "time"

// Action is a trading action recommendation.
type Action string

// Trading actions.
const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel classifies the risk attached to a recommendation or a
// currency exposure.
type RiskLevel string

// Risk levels. RiskUnknown is only produced by the currency analyzer when
// it cannot assess the inputs at all.
const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// Trend describes the relative movement of the company currency against
// the base currency.
type Trend string

// Exchange rate trends.
const (
	TrendStrengthening Trend = "STRENGTHENING"
	TrendWeakening     Trend = "WEAKENING"
	TrendStable        Trend = "STABLE"
)

// TrendImpact describes how a currency trend affects expected returns.
type TrendImpact string

// Trend impacts.
const (
	ImpactPositive TrendImpact = "POSITIVE"
	ImpactNegative TrendImpact = "NEGATIVE"
	ImpactNeutral  TrendImpact = "NEUTRAL"
)

// Impact assessment values used by the currency analyzer.
const (
	ImpactAssessmentMinimal   = "MINIMAL"
	ImpactAssessmentUncertain = "UNCERTAIN"
)

// StockSnapshot is a single point-in-time read of a ticker's price and
// volume data, produced by the market data provider.
type StockSnapshot struct {
	Ticker        string    `json:"ticker"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	MarketCap     *float64  `json:"market_cap,omitempty"`
	Volume        *int64    `json:"volume,omitempty"`
	PERatio       *float64  `json:"pe_ratio,omitempty"`
	Currency      string    `json:"currency"`
	CapturedAt    time.Time `json:"timestamp"`
}

// PriceChangePercent returns the day's price change as a percentage of the
// previous close.
func (s StockSnapshot) PriceChangePercent() float64 {
	if s.PreviousClose == 0 {
		return 0
	}
	return (s.CurrentPrice - s.PreviousClose) / s.PreviousClose * 100
}

// CompanyFinancials is a sparse, provider-supplied record of company
// fundamentals. Fields may be absent, so every access goes through the
// tolerant Float/String accessors.
type CompanyFinancials map[string]any

// Float returns the named field as a float64. Integer values are widened.
func (f CompanyFinancials) Float(key string) (float64, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// String returns the named field as a string.
func (f CompanyFinancials) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Recommendation is the engine's structured trading decision. It is created
// by the text parser or the rule-based recommender and never mutated.
type Recommendation struct {
	Ticker         string    `json:"ticker"`
	Action         Action    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	Reasoning      string    `json:"reasoning"`
	RiskLevel      RiskLevel `json:"risk_level"`
	TargetPrice    *float64  `json:"target_price,omitempty"`
	StopLoss       *float64  `json:"stop_loss,omitempty"`
	CurrencyImpact *string   `json:"currency_impact,omitempty"`
	GeneratedAt    time.Time `json:"timestamp"`
}

// CurrencyAssessment is the engine's structured judgment of cross-currency
// exposure risk.
type CurrencyAssessment struct {
	CompanyCurrency     string         `json:"company_currency"`
	BaseCurrency        string         `json:"base_currency"`
	CompanyCountry      string         `json:"company_country,omitempty"`
	RiskLevel           RiskLevel      `json:"currency_risk_level"`
	ExchangeRateTrend   Trend          `json:"exchange_rate_trend"`
	TrendImpact         TrendImpact    `json:"trend_impact"`
	ImpactAssessment    string         `json:"impact_assessment"`
	CurrentExchangeRate *float64       `json:"current_exchange_rate,omitempty"`
	RiskFactors         []string       `json:"risk_factors,omitempty"`
	Recommendations     []string       `json:"recommendations,omitempty"`
	Details             map[string]any `json:"detailed_analysis,omitempty"`
}

// AnalysisResult is the terminal artifact of one orchestration run.
type AnalysisResult struct {
	Ticker              string              `json:"ticker"`
	Snapshot            StockSnapshot       `json:"stock_data"`
	Recommendation      Recommendation      `json:"recommendation"`
	CurrencyAssessment  *CurrencyAssessment `json:"currency_analysis,omitempty"`
	TechnicalIndicators map[string]any      `json:"technical_indicators"`
	MarketSentiment     string              `json:"market_sentiment"`
}
