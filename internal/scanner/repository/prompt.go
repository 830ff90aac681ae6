package repository

import (
	"fmt"
	"strings"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/dto"
)

const signalSystemInstruction = "You are a quantitative algorithmic trading bot. You generate signals (STRONG_BUY, BUY, NEUTRAL, SELL, STRONG_SELL). You focus on volume spikes as the primary indicator for institutional movement."

func BuildSignalAnalysisPrompt(snapshot entity.InstrumentSnapshot, historyPoints int) string {
	var historyBuilder strings.Builder
	for _, p := range snapshot.RecentHistory(historyPoints) {
		historyBuilder.WriteString(fmt.Sprintf("Date: %s, Close: $%.2f, Vol: %d\n", p.Date, p.Close, p.Volume))
	}

	promptTemplate := `SCAN TARGET: %s (%s)
METRICS:
Price: $%.2f
24h Change: %.2f%%
Rel. Volume: %.2fx

PRICE/VOL HISTORY:
%s
TASK: Identify "High Opportunity" signals.
Look for: Volume breakouts, Bullish/Bearish reversals, and extreme relative volume (>2x).
Be aggressive but accurate. We only want to dispatch alerts for clear opportunities.

Respond with JSON:
{
  "type": "STRONG_BUY | BUY | NEUTRAL | SELL | STRONG_SELL",
  "reasoning": "<max 100 characters>",
  "confidence": <float 0.0-1.0>,
  "pattern": "<technical pattern name, e.g. Golden Cross, Volume Breakout>"
}`

	return fmt.Sprintf(promptTemplate,
		snapshot.Name, snapshot.Symbol,
		snapshot.Price,
		snapshot.ChangePercent,
		snapshot.RelativeVolume,
		historyBuilder.String(),
	)
}

func BuildMarketOverviewPrompt(headlines []dto.Headline) string {
	var b strings.Builder
	b.WriteString("Act as a pro hedge fund manager. Analyze today's stock market trend (especially tech and AI sectors). ")
	b.WriteString("Provide a 2-sentence market pulse and identify the general sentiment (Bullish, Bearish, Neutral, Volatile). ")
	b.WriteString("Find the top 3 headlines that could trigger volatility.\n")

	if len(headlines) > 0 {
		b.WriteString("\nRECENT HEADLINES:\n")
		for i, h := range headlines {
			b.WriteString(fmt.Sprintf("%d. %s (%s) %s\n", i+1, h.Title, h.Source, h.Link))
		}
	}

	b.WriteString(`
Respond with JSON:
{
  "sentiment": "BULLISH | BEARISH | NEUTRAL | VOLATILE",
  "summary": "<direct, high-impact market summary>",
  "headlines": [
    {"title": "<string>", "url": "<string, optional>", "source": "<string>"}
  ]
}`)
	return b.String()
}
