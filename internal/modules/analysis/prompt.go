package analysis

import (
	"fmt"
	"strings"

	"github.com/aristath/advisor/internal/domain"
)

// BuildPrompt prepares the analysis prompt sent to the model. The response
// format section must request exactly the label vocabulary the parser
// recognizes - prompt construction and parsing share a compatibility
// invariant, covered by tests.
func BuildPrompt(snapshot domain.StockSnapshot, financials domain.CompanyFinancials, assessment *domain.CurrencyAssessment) string {
	var b strings.Builder

	b.WriteString("You are a financial analysis assistant. Analyze the following stock and provide a trading recommendation that is easy to understand for both financial experts and everyday investors.\n\n")

	b.WriteString("STOCK INFORMATION:\n")
	fmt.Fprintf(&b, "- Company: %s\n", snapshot.Ticker)
	fmt.Fprintf(&b, "- Current Stock Price: %.2f (%s)\n", snapshot.CurrentPrice, snapshot.Currency)
	fmt.Fprintf(&b, "- Previous Closing Price: %.2f\n", snapshot.PreviousClose)
	fmt.Fprintf(&b, "- Price Change Today: %.2f%%\n", round2(snapshot.PriceChangePercent()))
	fmt.Fprintf(&b, "- Company Size: %s\n", stringField(financials, "market_cap_category"))
	fmt.Fprintf(&b, "- Business Sector: %s\n", stringField(financials, "sector"))
	fmt.Fprintf(&b, "- Industry: %s\n", stringField(financials, "industry"))
	fmt.Fprintf(&b, "- Country: %s\n", stringField(financials, "country"))

	b.WriteString("\nFINANCIAL HEALTH INDICATORS:\n")
	fmt.Fprintf(&b, "- P/E Ratio: %s - how much investors pay for each unit of company earnings\n", peField(snapshot, financials))
	fmt.Fprintf(&b, "- Profit Margin: %s - profit made from each unit of sales\n", floatField(financials, "profit_margin"))
	fmt.Fprintf(&b, "- Debt-to-Equity Ratio: %s - company debt compared to shareholder investment\n", floatField(financials, "debt_to_equity"))
	fmt.Fprintf(&b, "- Return on Equity: %s - how efficiently shareholder money generates profit\n", floatField(financials, "return_on_equity"))
	fmt.Fprintf(&b, "- Beta: %s - how much the stock moves compared to the overall market\n", floatField(financials, "beta"))
	fmt.Fprintf(&b, "- Dividend Yield: %s - annual dividends as a percentage of the stock price\n", floatField(financials, "dividend_yield"))
	fmt.Fprintf(&b, "- 52-Week High: %s\n", floatField(financials, "52_week_high"))
	fmt.Fprintf(&b, "- 52-Week Low: %s\n", floatField(financials, "52_week_low"))

	b.WriteString("\nCURRENCY ANALYSIS:\n")
	b.WriteString(formatCurrencyAssessment(assessment))

	b.WriteString("\nIMPORTANT: Use simple, easy-to-understand language and explain financial terms when you use them.\n")
	b.WriteString("\nProvide your analysis in exactly the following format:\n")
	b.WriteString("RECOMMENDATION: [BUY/SELL/HOLD]\n")
	b.WriteString("CONFIDENCE: [0.0-1.0] (where 1.0 means very confident, 0.5 means uncertain)\n")
	b.WriteString("RISK_LEVEL: [LOW/MEDIUM/HIGH]\n")
	b.WriteString("TARGET_PRICE: [price or N/A] (what price the stock could reach)\n")
	b.WriteString("STOP_LOSS: [price or N/A] (price at which to sell to limit losses)\n")
	b.WriteString("\nREASONING: [Detailed, easy-to-understand explanation covering:]\n")
	b.WriteString("1. COMPANY PERFORMANCE: how well the company is doing financially, in simple terms\n")
	b.WriteString("2. STOCK PRICE SITUATION: is the stock expensive, cheap, or fairly priced?\n")
	b.WriteString("3. MARKET CONDITIONS: how current market conditions affect this stock\n")
	b.WriteString("4. RISKS TO CONSIDER: what could go wrong with this investment\n")
	b.WriteString("5. WHY THIS RECOMMENDATION: summarize the BUY/SELL/HOLD call in plain language\n")
	b.WriteString("\nSIMPLE_SUMMARY: [2-3 sentence recap a complete beginner could understand]\n")
	b.WriteString("\nCURRENCY_IMPACT: [Brief assessment of how the currency situation affects the recommendation]\n")

	return b.String()
}

// formatCurrencyAssessment renders the currency assessment block of the
// prompt, or a placeholder when no assessment was run.
func formatCurrencyAssessment(assessment *domain.CurrencyAssessment) string {
	if assessment == nil {
		return "No specific currency analysis provided.\n"
	}

	var b strings.Builder
	b.WriteString("Currency Impact Assessment:\n")
	fmt.Fprintf(&b, "- Company currency: %s (base: %s)\n", assessment.CompanyCurrency, assessment.BaseCurrency)
	fmt.Fprintf(&b, "- Currency risk level: %s\n", assessment.RiskLevel)
	fmt.Fprintf(&b, "- Exchange rate trend: %s (%s impact)\n", assessment.ExchangeRateTrend, assessment.TrendImpact)
	if assessment.CurrentExchangeRate != nil {
		fmt.Fprintf(&b, "- Current exchange rate: %.4f\n", *assessment.CurrentExchangeRate)
	}
	for _, factor := range assessment.RiskFactors {
		fmt.Fprintf(&b, "- Risk factor: %s\n", factor)
	}
	for _, rec := range assessment.Recommendations {
		fmt.Fprintf(&b, "- Guidance: %s\n", rec)
	}
	return b.String()
}

func stringField(financials domain.CompanyFinancials, key string) string {
	if v, ok := financials.String(key); ok && v != "" {
		return v
	}
	return "N/A"
}

func floatField(financials domain.CompanyFinancials, key string) string {
	if v, ok := financials.Float(key); ok {
		return fmt.Sprintf("%.4g", v)
	}
	return "N/A"
}

func peField(snapshot domain.StockSnapshot, financials domain.CompanyFinancials) string {
	if pe, ok := resolvePERatio(snapshot, financials); ok {
		return fmt.Sprintf("%.4g", pe)
	}
	return "N/A"
}
