package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAlertMessage(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{
			name:  "buy alert",
			title: "Opportunity: AAPL",
			body:  "⚠️ TRADE ALERT: AAPL\nSIGNAL: STRONG BUY\nDETAIL: Volume Breakout",
			want:  "📈 *Opportunity: AAPL*\n\n⚠️ TRADE ALERT: AAPL\nSIGNAL: STRONG BUY\nDETAIL: Volume Breakout",
		},
		{
			name:  "sell alert",
			title: "Opportunity: TSLA",
			body:  "SIGNAL: SELL",
			want:  "📉 *Opportunity: TSLA*\n\nSIGNAL: SELL",
		},
		{
			name:  "market briefing escapes markdown",
			title: "Opportunity: GLOBAL MARKET",
			body:  "SIGNAL: MARKET_BULLISH *now*",
			want:  "🔔 *Opportunity: GLOBAL MARKET*\n\nSIGNAL: MARKET\\_BULLISH \\*now\\*",
		},
		{
			name:  "title is not escaped inside bold",
			title: "Opportunity: BRK_B *hot*",
			body:  "SIGNAL: NEUTRAL",
			want:  "🔔 *Opportunity: BRK_B hot*\n\nSIGNAL: NEUTRAL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAlertMessage(tt.title, tt.body))
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "a\\_b \\[link] \\`x\\`", EscapeMarkdown("a_b [link] `x`"))
}
