// Package currency implements cross-currency exposure scoring for trading
// recommendations.
package currency

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

// Heuristic thresholds. Kept as named constants rather than inline magic
// numbers so they can be tuned in one place.
const (
	// trendThreshold is the relative-strength gap beyond which a currency
	// pair is considered strengthening or weakening.
	trendThreshold = 0.2

	// defaultStrength is assumed for currency codes missing from the
	// strength table.
	defaultStrength = 0.5
)

// Read-only lookup tables, established at process start and never mutated.
// Safe for concurrent reads without synchronization.
var (
	// internationalSectors are sector names with significant cross-border
	// revenue exposure. Matched case-insensitively as substrings.
	internationalSectors = []string{
		"technology", "telecommunications", "energy", "materials",
		"industrials", "consumer discretionary",
	}

	// exportHeavyIndustries are industries that earn a large share of
	// revenue abroad.
	exportHeavyIndustries = []string{
		"semiconductors", "software", "oil & gas", "mining",
		"automotive", "aerospace", "pharmaceuticals",
	}

	// emergingCurrencies are codes whose volatility forces the risk level
	// to HIGH regardless of the other checks.
	emergingCurrencies = map[string]struct{}{
		"BRL": {}, "INR": {}, "RUB": {}, "ZAR": {}, "TRY": {}, "MXN": {},
	}

	// currencyStrength is a fixed relative-strength score per currency,
	// on a 0-1 scale.
	currencyStrength = map[string]float64{
		"USD": 0.8,
		"EUR": 0.6,
		"GBP": 0.5,
		"JPY": 0.3,
		"CHF": 0.9,
		"CAD": 0.6,
		"AUD": 0.4,
	}
)

// Analyzer scores cross-currency exposure for a company against a base
// currency. It is a pure scoring function over the lookup tables above;
// the optional rate provider only enriches the result with a spot rate.
type Analyzer struct {
	rates domain.RateProvider // optional, nil disables rate enrichment
	log   zerolog.Logger
}

// NewAnalyzer creates a currency risk analyzer. rates may be nil.
func NewAnalyzer(rates domain.RateProvider, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		rates: rates,
		log:   log.With().Str("component", "currency_analyzer").Logger(),
	}
}

// Assess produces a CurrencyAssessment for the given company. Matching
// currencies short-circuit to minimal risk. Missing financials degrade to
// an UNKNOWN/UNCERTAIN result rather than failing.
func (a *Analyzer) Assess(financials domain.CompanyFinancials, companyCurrency, baseCurrency string) domain.CurrencyAssessment {
	if financials == nil {
		return domain.CurrencyAssessment{
			CompanyCurrency:   companyCurrency,
			BaseCurrency:      baseCurrency,
			RiskLevel:         domain.RiskUnknown,
			ExchangeRateTrend: domain.TrendStable,
			TrendImpact:       domain.ImpactNeutral,
			ImpactAssessment:  domain.ImpactAssessmentUncertain,
		}
	}

	country, _ := financials.String("country")

	assessment := domain.CurrencyAssessment{
		CompanyCurrency:   companyCurrency,
		BaseCurrency:      baseCurrency,
		CompanyCountry:    country,
		RiskLevel:         domain.RiskLow,
		ExchangeRateTrend: domain.TrendStable,
		TrendImpact:       domain.ImpactNeutral,
		ImpactAssessment:  domain.ImpactAssessmentMinimal,
		Details:           map[string]any{},
	}

	// Matching currencies mean minimal exposure - skip all heuristics.
	if companyCurrency == baseCurrency {
		assessment.Details["same_currency"] = true
		assessment.Recommendations = []string{minimalImpactNote}
		return assessment
	}

	if a.rates != nil {
		if rate, err := a.rates.GetRate(companyCurrency, baseCurrency); err == nil {
			assessment.CurrentExchangeRate = &rate
			assessment.Details["exchange_rate"] = rate
		} else {
			a.log.Debug().Err(err).
				Str("from", companyCurrency).
				Str("to", baseCurrency).
				Msg("Exchange rate unavailable, continuing without it")
		}
	}

	a.assessRisk(&assessment, financials, companyCurrency, baseCurrency)
	a.assessTrend(&assessment, companyCurrency, baseCurrency)
	assessment.Recommendations = buildRecommendations(assessment)

	return assessment
}

// assessRisk accumulates risk factors. The level only ever escalates
// across checks, never decreases.
func (a *Analyzer) assessRisk(assessment *domain.CurrencyAssessment, financials domain.CompanyFinancials, companyCurrency, baseCurrency string) {
	sector, _ := financials.String("sector")
	industry, _ := financials.String("industry")
	sector = strings.ToLower(sector)
	industry = strings.ToLower(industry)

	risk := domain.RiskLow
	var factors []string

	for _, s := range internationalSectors {
		if strings.Contains(sector, s) {
			factors = append(factors, "International sector exposure")
			risk = escalate(risk, domain.RiskMedium)
			break
		}
	}

	for _, i := range exportHeavyIndustries {
		if strings.Contains(industry, i) {
			factors = append(factors, "Export-heavy industry")
			risk = escalate(risk, domain.RiskMedium)
			break
		}
	}

	// Smaller companies hedge less and feel currency swings harder: raise
	// the level one further step.
	capCategory, _ := financials.String("market_cap_category")
	if capCategory == "Small Cap" || capCategory == "Micro Cap" {
		factors = append(factors, "Smaller company - higher currency sensitivity")
		if risk == domain.RiskLow {
			risk = domain.RiskMedium
		} else {
			risk = domain.RiskHigh
		}
	}

	if isEmerging(companyCurrency) || isEmerging(baseCurrency) {
		factors = append(factors, "Emerging market currency exposure")
		risk = domain.RiskHigh
	}

	assessment.RiskLevel = risk
	assessment.RiskFactors = factors
	assessment.Details["sector_risk"] = sector
	assessment.Details["industry_risk"] = industry
	assessment.Details["market_cap_impact"] = capCategory
}

// assessTrend compares fixed relative-strength scores for the two
// currencies and classifies the pair's trend.
func (a *Analyzer) assessTrend(assessment *domain.CurrencyAssessment, companyCurrency, baseCurrency string) {
	companyStrength := strengthOf(companyCurrency)
	baseStrength := strengthOf(baseCurrency)

	switch {
	case companyStrength-baseStrength > trendThreshold:
		assessment.ExchangeRateTrend = domain.TrendStrengthening
		assessment.TrendImpact = domain.ImpactPositive
	case companyStrength-baseStrength < -trendThreshold:
		assessment.ExchangeRateTrend = domain.TrendWeakening
		assessment.TrendImpact = domain.ImpactNegative
	default:
		assessment.ExchangeRateTrend = domain.TrendStable
		assessment.TrendImpact = domain.ImpactNeutral
	}

	assessment.Details["company_currency_strength"] = companyStrength
	assessment.Details["base_currency_strength"] = baseStrength
	assessment.Details["relative_strength"] = companyStrength - baseStrength
}

const minimalImpactNote = "Currency impact is minimal - focus on fundamentals"

// buildRecommendations renders the deterministic guidance lines keyed off
// risk level and trend impact.
func buildRecommendations(assessment domain.CurrencyAssessment) []string {
	var recs []string

	if assessment.RiskLevel == domain.RiskHigh {
		recs = append(recs,
			"Consider currency hedging due to high exposure",
			"Monitor exchange rate movements closely",
		)
	}

	switch assessment.TrendImpact {
	case domain.ImpactPositive:
		recs = append(recs, "Favorable currency trends support the investment")
	case domain.ImpactNegative:
		recs = append(recs, "Unfavorable currency trends may impact returns")
	}

	switch assessment.ExchangeRateTrend {
	case domain.TrendStrengthening:
		recs = append(recs, "Company currency strengthening - positive for returns")
	case domain.TrendWeakening:
		recs = append(recs, "Company currency weakening - may reduce returns")
	}

	if len(recs) == 0 {
		recs = append(recs, minimalImpactNote)
	}

	return recs
}

func escalate(current, proposed domain.RiskLevel) domain.RiskLevel {
	if rank(proposed) > rank(current) {
		return proposed
	}
	return current
}

func rank(level domain.RiskLevel) int {
	switch level {
	case domain.RiskLow:
		return 0
	case domain.RiskMedium:
		return 1
	case domain.RiskHigh:
		return 2
	}
	return -1
}

func isEmerging(code string) bool {
	_, ok := emergingCurrencies[code]
	return ok
}

func strengthOf(code string) float64 {
	if s, ok := currencyStrength[code]; ok {
		return s
	}
	return defaultStrength
}
