// Package analysis implements the recommendation synthesis engine: the
// model-text parser, the rule-based fallback recommender, technical
// indicators, sentiment scoring, and the orchestrator that combines them.
package analysis

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/advisor/internal/domain"
)

// DefaultReasoning is the placeholder used when the model text never
// produced a REASONING section.
const DefaultReasoning = "AI analysis completed"

// Recognized field labels. The prompt builder must emit exactly these -
// see BuildPrompt.
const (
	labelRecommendation = "RECOMMENDATION:"
	labelConfidence     = "CONFIDENCE:"
	labelRiskLevel      = "RISK_LEVEL:"
	labelTargetPrice    = "TARGET_PRICE:"
	labelStopLoss       = "STOP_LOSS:"
	labelReasoning      = "REASONING:"
	labelSimpleSummary  = "SIMPLE_SUMMARY:"
	labelCurrencyImpact = "CURRENCY_IMPACT:"
)

// section tracks which multi-line block of the model text is currently
// open. Labels always close the current section before taking effect.
type section int

const (
	sectionNone section = iota
	sectionReasoning
	sectionSummary
	sectionCurrencyImpact
)

// Parser converts free-text model output into a structured Recommendation.
// It is total: any input, however malformed, yields a best-effort result
// with documented defaults. Malformed fields degrade individually and
// never affect the other fields.
type Parser struct {
	log zerolog.Logger
}

// NewParser creates a recommendation text parser.
func NewParser(log zerolog.Logger) *Parser {
	return &Parser{log: log.With().Str("component", "recommendation_parser").Logger()}
}

// Parse scans raw model text line by line and assembles a Recommendation.
// Lines matching a recognized label set the corresponding field; plain
// lines append to whichever free-text section is open. Everything else is
// discarded.
func (p *Parser) Parse(raw, ticker string) domain.Recommendation {
	rec := domain.Recommendation{
		Ticker:      ticker,
		Action:      domain.ActionHold,
		Confidence:  0.5,
		RiskLevel:   domain.RiskMedium,
		GeneratedAt: time.Now().UTC(),
	}

	state := sectionNone
	var reasoningParts []string
	var summaryParts []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, labelRecommendation):
			state = sectionNone
			value := strings.ToUpper(labelValue(line, labelRecommendation))
			switch domain.Action(value) {
			case domain.ActionBuy, domain.ActionSell, domain.ActionHold:
				rec.Action = domain.Action(value)
			default:
				p.log.Debug().Str("value", value).Msg("Unrecognized recommendation value, keeping previous")
			}

		case strings.HasPrefix(line, labelConfidence):
			state = sectionNone
			if f, err := strconv.ParseFloat(labelValue(line, labelConfidence), 64); err == nil {
				rec.Confidence = clamp01(f)
			}

		case strings.HasPrefix(line, labelRiskLevel):
			state = sectionNone
			value := strings.ToUpper(labelValue(line, labelRiskLevel))
			switch domain.RiskLevel(value) {
			case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
				rec.RiskLevel = domain.RiskLevel(value)
			}

		case strings.HasPrefix(line, labelTargetPrice):
			state = sectionNone
			if price, ok := parsePrice(labelValue(line, labelTargetPrice)); ok {
				rec.TargetPrice = &price
			}

		case strings.HasPrefix(line, labelStopLoss):
			state = sectionNone
			if price, ok := parsePrice(labelValue(line, labelStopLoss)); ok {
				rec.StopLoss = &price
			}

		case strings.HasPrefix(line, labelReasoning):
			state = sectionReasoning
			if value := labelValue(line, labelReasoning); value != "" {
				reasoningParts = append(reasoningParts, value)
			}

		case strings.HasPrefix(line, labelSimpleSummary):
			state = sectionSummary
			if value := labelValue(line, labelSimpleSummary); value != "" {
				summaryParts = append(summaryParts, value)
			}

		case strings.HasPrefix(line, labelCurrencyImpact):
			// Single-line field, last occurrence wins. Continuation lines
			// after it are discarded.
			state = sectionCurrencyImpact
			value := labelValue(line, labelCurrencyImpact)
			rec.CurrencyImpact = &value

		default:
			switch state {
			case sectionReasoning:
				reasoningParts = append(reasoningParts, line)
			case sectionSummary:
				summaryParts = append(summaryParts, line)
			}
		}
	}

	rec.Reasoning = DefaultReasoning
	if len(reasoningParts) > 0 {
		rec.Reasoning = strings.Join(reasoningParts, " ")
	}
	if len(summaryParts) > 0 {
		rec.Reasoning += "\n\nSIMPLE SUMMARY: " + strings.Join(summaryParts, " ")
	}

	return rec
}

// labelValue returns the trimmed remainder of a line after its label.
func labelValue(line, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, label))
}

// priceCleaner strips currency symbols, thousands separators, and spaces
// before decimal parsing.
var priceCleaner = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// parsePrice parses a price value from model text. Returns false for
// anything that is not a plain non-negative decimal number, leaving the
// field unset rather than defaulting to zero.
func parsePrice(value string) (float64, bool) {
	cleaned := priceCleaner.Replace(value)
	if cleaned == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return 0, false
	}

	f, _ := d.Float64()
	return f, true
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
