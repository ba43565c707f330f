package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clients/exchangerate"
)

// Currency pairs kept warm for analysis. These cover the strength table
// currencies against USD so same-session analyses hit the cache.
var defaultRatePairs = [][2]string{
	{"EUR", "USD"},
	{"GBP", "USD"},
	{"JPY", "USD"},
	{"CHF", "USD"},
	{"CAD", "USD"},
	{"AUD", "USD"},
	{"USD", "EUR"},
	{"USD", "GBP"},
	{"USD", "JPY"},
}

// RateRefreshJob keeps the exchange rate cache warm
type RateRefreshJob struct {
	client *exchangerate.Client
	log    zerolog.Logger
}

// NewRateRefreshJob creates a rate refresh job
func NewRateRefreshJob(client *exchangerate.Client, log zerolog.Logger) *RateRefreshJob {
	return &RateRefreshJob{
		client: client,
		log:    log.With().Str("job", "rate_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RateRefreshJob) Name() string {
	return "rate_refresh"
}

// Run refreshes the cached rates for the default pairs
func (j *RateRefreshJob) Run() error {
	j.client.Refresh(defaultRatePairs)
	j.log.Debug().Int("pairs", len(defaultRatePairs)).Msg("Exchange rates refreshed")
	return nil
}
