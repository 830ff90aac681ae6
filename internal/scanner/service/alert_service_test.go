package service

import (
	"context"
	"strings"
	"testing"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldDispatch(t *testing.T) {
	alert := testConfig().Alert
	tests := []struct {
		name       string
		typ        entity.SignalType
		confidence float64
		relVol     float64
		want       bool
	}{
		{"strong buy", entity.SignalStrongBuy, 0.1, 0.5, true},
		{"strong sell", entity.SignalStrongSell, 0.1, 0.5, true},
		{"confident buy", entity.SignalBuy, 0.81, 1, true},
		{"confidence threshold is strict", entity.SignalBuy, 0.8, 1, false},
		{"heavy volume sell", entity.SignalSell, 0.3, 2.3, true},
		{"volume threshold is strict", entity.SignalSell, 0.3, 2.2, false},
		{"weak buy", entity.SignalBuy, 0.5, 1.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := entity.ClassifiedSignal{Type: tt.typ, Confidence: tt.confidence}
			assert.Equal(t, tt.want, ShouldDispatch(alert, sig, tt.relVol))
		})
	}
}

func TestOnSignal_NeutralIsIgnored(t *testing.T) {
	p := newPipeline()
	p.alerts.OnSignal(context.Background(),
		entity.InstrumentSnapshot{Symbol: "AAPL", RelativeVolume: 5},
		entity.ClassifiedSignal{Symbol: "AAPL", Type: entity.SignalNeutral, Confidence: 0.99})

	assert.Empty(t, p.notifications.List(context.Background()))
	assert.Empty(t, p.notifier.Sent())
}

func TestOnSignal_NotificationWithoutDispatch(t *testing.T) {
	p := newPipeline()
	reasoning := strings.Repeat("r", 80)
	p.alerts.OnSignal(context.Background(),
		entity.InstrumentSnapshot{Symbol: "TSLA", RelativeVolume: 1.1},
		entity.ClassifiedSignal{Symbol: "TSLA", Type: entity.SignalSell, Confidence: 0.4, Reasoning: reasoning, DetectedPattern: "Bear Flag"})

	feed := p.notifications.List(context.Background())
	require.Len(t, feed, 1)
	assert.Equal(t, "SELL: TSLA", feed[0].Title)
	assert.Equal(t, "Bear Flag - "+strings.Repeat("r", 60)+"...", feed[0].Message)
	assert.Equal(t, entity.SeverityWarning, feed[0].Severity)
	assert.Empty(t, p.notifier.Sent())
}

func TestOnSignal_StrongBuyDispatches(t *testing.T) {
	p := newPipeline()
	p.alerts.OnSignal(context.Background(),
		entity.InstrumentSnapshot{Symbol: "NVDA", RelativeVolume: 1},
		entity.ClassifiedSignal{Symbol: "NVDA", Type: entity.SignalStrongBuy, Confidence: 0.7, Reasoning: "short", DetectedPattern: "Golden Cross"})

	feed := p.notifications.List(context.Background())
	require.Len(t, feed, 1)
	assert.Equal(t, "STRONG BUY: NVDA", feed[0].Title)
	assert.Equal(t, "Golden Cross - short...", feed[0].Message)
	assert.Equal(t, entity.SeveritySuccess, feed[0].Severity)

	sent := p.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Opportunity: NVDA", sent[0].Title)
	assert.Contains(t, sent[0].Body, "SIGNAL: STRONG_BUY\nDETAIL: Golden Cross")
}

// An unavailable classifier with relative volume 2.5 still produces an alert.
func TestFallbackSignalDispatchesOnce(t *testing.T) {
	p := newPipeline()
	svc := NewSignalService(p.cfg, logger.NewNop(), &fakeAI{err: errUpstream}, fakeHeadlines{}, metrics.NewNop(), p.clock.Now)
	ctx := context.Background()
	snapshot := entity.InstrumentSnapshot{Symbol: "AAPL", RelativeVolume: 2.5}

	for i := 0; i < 3; i++ {
		signal := svc.ClassifyInstrument(ctx, snapshot)
		require.Equal(t, entity.SignalStrongBuy, signal.Type)
		require.Equal(t, 0.65, signal.Confidence)
		p.alerts.OnSignal(ctx, snapshot, signal)
	}

	records, err := p.dispatcher.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL-STRONG_BUY-2024-06-15", records[0].Key)
	assert.Equal(t, "Institutional Volume Spike", records[0].Detail)
	assert.Len(t, p.notifier.Sent(), 1)
	assert.Len(t, p.notifications.List(ctx), 3)
}

func TestOnOutlook(t *testing.T) {
	tests := []struct {
		sentiment entity.Sentiment
		severity  entity.Severity
		dispatch  bool
	}{
		{entity.SentimentBullish, entity.SeveritySuccess, true},
		{entity.SentimentBearish, entity.SeverityError, true},
		{entity.SentimentVolatile, entity.SeverityWarning, true},
		{entity.SentimentNeutral, entity.SeverityInfo, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.sentiment), func(t *testing.T) {
			p := newPipeline()
			summary := "Mega-cap tech extends gains as AI spending accelerates across the sector."
			p.alerts.OnOutlook(context.Background(), entity.MarketOutlook{Sentiment: tt.sentiment, Summary: summary})

			feed := p.notifications.List(context.Background())
			require.Len(t, feed, 1)
			assert.Equal(t, "Market Trend: "+string(tt.sentiment), feed[0].Title)
			assert.Equal(t, summary, feed[0].Message)
			assert.Equal(t, tt.severity, feed[0].Severity)

			records, err := p.dispatcher.List(context.Background())
			require.NoError(t, err)
			if !tt.dispatch {
				assert.Empty(t, records)
				return
			}
			require.Len(t, records, 1)
			assert.Equal(t, "GLOBAL MARKET", records[0].Target)
			assert.Equal(t, string(tt.sentiment), records[0].SignalLabel)
			assert.Equal(t, summary[:50], records[0].Detail)
			assert.Equal(t, "Opportunity: GLOBAL MARKET", p.notifier.Sent()[0].Title)
		})
	}
}
