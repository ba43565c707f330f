package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/currency"
)

// Request carries the already-fetched inputs for one analysis run.
type Request struct {
	Ticker          string
	BaseCurrency    string
	IncludeCurrency bool
	Snapshot        *domain.StockSnapshot
	Financials      domain.CompanyFinancials
}

// Orchestrator sequences one analysis run: currency assessment, then a
// model-backed or rule-based recommendation, then indicators and
// sentiment. It holds no cross-call state, so concurrent runs need no
// coordination.
type Orchestrator struct {
	parser      *Parser
	recommender *RuleBasedRecommender
	currency    *currency.Analyzer
	model       domain.ModelCaller // nil means rule-based only
	log         zerolog.Logger
}

// NewOrchestrator creates the analysis orchestrator. model may be nil, in
// which case every recommendation comes from the rule-based path.
func NewOrchestrator(analyzer *currency.Analyzer, model domain.ModelCaller, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		parser:      NewParser(log),
		recommender: NewRuleBasedRecommender(),
		currency:    analyzer,
		model:       model,
		log:         log.With().Str("component", "orchestrator").Logger(),
	}
}

// Analyze runs the full pipeline over already-fetched data. The only
// fatal condition is a missing snapshot; a model-call failure degrades to
// the rule-based recommender and is never surfaced.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*domain.AnalysisResult, error) {
	if req.Snapshot == nil {
		return nil, domain.DataUnavailableError{Ticker: req.Ticker}
	}

	snapshot := *req.Snapshot
	financials := req.Financials
	if financials == nil {
		financials = domain.CompanyFinancials{}
	}

	var assessment *domain.CurrencyAssessment
	if req.IncludeCurrency {
		a := o.currency.Assess(financials, companyCurrency(snapshot, financials), req.BaseCurrency)
		assessment = &a
	}

	recommendation := o.recommend(ctx, snapshot, financials, assessment)

	result := &domain.AnalysisResult{
		Ticker:              req.Ticker,
		Snapshot:            snapshot,
		Recommendation:      recommendation,
		CurrencyAssessment:  assessment,
		TechnicalIndicators: ComputeIndicators(snapshot, financials),
		MarketSentiment:     ScoreSentiment(snapshot, financials),
	}

	o.log.Info().
		Str("ticker", req.Ticker).
		Str("action", string(recommendation.Action)).
		Float64("confidence", recommendation.Confidence).
		Str("sentiment", result.MarketSentiment).
		Msg("Analysis completed")

	return result, nil
}

// recommend produces the recommendation via the model when one is
// configured, falling back to the rule engine on any model failure.
func (o *Orchestrator) recommend(ctx context.Context, snapshot domain.StockSnapshot, financials domain.CompanyFinancials, assessment *domain.CurrencyAssessment) domain.Recommendation {
	if o.model == nil {
		return o.recommender.Recommend(snapshot, financials)
	}

	prompt := BuildPrompt(snapshot, financials, assessment)
	raw, err := o.model.Call(ctx, prompt)
	if err != nil {
		o.log.Warn().Err(err).Str("ticker", snapshot.Ticker).Msg("Model call failed, using rule-based fallback")
		return o.recommender.Recommend(snapshot, financials)
	}

	return o.parser.Parse(raw, snapshot.Ticker)
}

// companyCurrency resolves the currency the company reports in, preferring
// the financials record over the snapshot.
func companyCurrency(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) string {
	if c, ok := financials.String("currency"); ok && c != "" {
		return c
	}
	if snapshot.Currency != "" {
		return snapshot.Currency
	}
	return "USD"
}
