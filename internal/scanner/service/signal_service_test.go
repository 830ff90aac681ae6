package service

import (
	"context"
	"testing"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSignalService(ai *fakeAI, headlines fakeHeadlines) SignalService {
	return NewSignalService(testConfig(), logger.NewNop(), ai, headlines, metrics.NewNop(), newTestClock().Now)
}

func TestClassifyInstrument_UsesAIResult(t *testing.T) {
	ai := &fakeAI{signal: &dto.SignalAnalysisResult{Type: "BUY", Reasoning: "Breakout", Confidence: 0.72, Pattern: "Bull Flag"}}
	svc := newTestSignalService(ai, fakeHeadlines{})

	got := svc.ClassifyInstrument(context.Background(), entity.InstrumentSnapshot{Symbol: "NVDA", RelativeVolume: 3})

	assert.Equal(t, entity.SignalBuy, got.Type)
	assert.Equal(t, 0.72, got.Confidence)
	assert.Equal(t, "Breakout", got.Reasoning)
	assert.Equal(t, "Bull Flag", got.DetectedPattern)
	assert.Equal(t, "NVDA", got.Symbol)
	assert.False(t, got.Fallback)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, newTestClock().Now(), got.Timestamp)
}

func TestClassifyInstrument_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		relVol  float64
		typ     entity.SignalType
		pattern string
	}{
		{"heavy volume", 2.5, entity.SignalStrongBuy, FallbackSpikePattern},
		{"strong threshold is strict", 2.2, entity.SignalNeutral, FallbackSpikePattern},
		{"spike only", 2.1, entity.SignalNeutral, FallbackSpikePattern},
		{"spike threshold is strict", 2.0, entity.SignalNeutral, FallbackDefaultPattern},
		{"normal volume", 1.0, entity.SignalNeutral, FallbackDefaultPattern},
		{"no volume", 0, entity.SignalNeutral, FallbackDefaultPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeAI{err: errUpstream}
			svc := newTestSignalService(ai, fakeHeadlines{})

			got := svc.ClassifyInstrument(context.Background(), entity.InstrumentSnapshot{Symbol: "AAPL", RelativeVolume: tt.relVol})

			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.pattern, got.DetectedPattern)
			assert.Equal(t, 0.65, got.Confidence)
			assert.Equal(t, FallbackReasoning, got.Reasoning)
			assert.True(t, got.Fallback)
			assert.Equal(t, []string{"AAPL"}, ai.calls)
		})
	}
}

func TestClassifyMarket(t *testing.T) {
	ai := &fakeAI{overview: &dto.MarketOverviewResult{
		Sentiment: "VOLATILE",
		Summary:   "Rates whipsaw tech.",
		Headlines: []dto.HeadlineResult{{Title: "CPI hot", URL: "https://x.example", Source: "Reuters"}},
	}}
	headlines := fakeHeadlines{items: []dto.Headline{{Title: "CPI preview"}}}
	svc := newTestSignalService(ai, headlines)

	got := svc.ClassifyMarket(context.Background())

	assert.Equal(t, entity.SentimentVolatile, got.Sentiment)
	assert.Equal(t, "Rates whipsaw tech.", got.Summary)
	assert.Equal(t, []entity.NewsItem{{Title: "CPI hot", URL: "https://x.example", Source: "Reuters"}}, got.TopNews)
	assert.False(t, got.Fallback)
	assert.Equal(t, headlines.items, ai.headlines)
}

func TestClassifyMarket_Fallback(t *testing.T) {
	ai := &fakeAI{err: errUpstream}
	svc := newTestSignalService(ai, fakeHeadlines{err: errUpstream})

	got := svc.ClassifyMarket(context.Background())

	assert.Equal(t, entity.SentimentNeutral, got.Sentiment)
	assert.Equal(t, FallbackMarketSummary, got.Summary)
	require.NotNil(t, got.TopNews)
	assert.Empty(t, got.TopNews)
	assert.True(t, got.Fallback)
	assert.Equal(t, 1, ai.overviewed)
	assert.Nil(t, ai.headlines)
}
