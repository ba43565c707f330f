package yahoo

// Market cap bucket boundaries, in the quote currency.
const (
	megaCapFloor  = 200_000_000_000
	largeCapFloor = 10_000_000_000
	midCapFloor   = 2_000_000_000
	smallCapFloor = 300_000_000
)

// CategorizeMarketCap buckets a market capitalization into the standard
// size categories used by the currency analyzer and the indicators.
func CategorizeMarketCap(marketCap float64) string {
	switch {
	case marketCap <= 0:
		return "Unknown"
	case marketCap >= megaCapFloor:
		return "Mega Cap"
	case marketCap >= largeCapFloor:
		return "Large Cap"
	case marketCap >= midCapFloor:
		return "Mid Cap"
	case marketCap >= smallCapFloor:
		return "Small Cap"
	default:
		return "Micro Cap"
	}
}
