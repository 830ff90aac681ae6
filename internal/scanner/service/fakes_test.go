package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"
)

var errUpstream = errors.New("upstream unavailable")

func testConfig() *config.Config {
	return &config.Config{
		Scanner: config.Scanner{
			BatchSize:        10,
			StepDelay:        0,
			AnalysisTimeout:  time.Second,
			HistoryForPrompt: 10,
			AnalyzeOnStart:   "AAPL",
		},
		Alert: config.Alert{
			DispatchConfidence:           0.8,
			DispatchRelativeVolume:       2.2,
			FallbackStrongRelativeVolume: 2.2,
			FallbackSpikeRelativeVolume:  2.0,
			FallbackConfidence:           0.65,
			Store:                        "memory",
			LinkBaseURL:                  "https://tradepulse-ai.app",
			Recipient:                    "SMS USER",
		},
		Notification: config.Notification{MaxItems: 200},
	}
}

// testClock is a settable clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 15, 15, 4, 5, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeAI struct {
	mu         sync.Mutex
	signal     *dto.SignalAnalysisResult
	overview   *dto.MarketOverviewResult
	err        error
	calls      []string
	headlines  []dto.Headline
	overviewed int
}

func (f *fakeAI) AnalyzeSignal(_ context.Context, snapshot entity.InstrumentSnapshot) (*dto.SignalAnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, snapshot.Symbol)
	if f.err != nil {
		return nil, f.err
	}
	return f.signal, nil
}

func (f *fakeAI) MarketOverview(_ context.Context, headlines []dto.Headline) (*dto.MarketOverviewResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overviewed++
	f.headlines = headlines
	if f.err != nil {
		return nil, f.err
	}
	return f.overview, nil
}

type fakeHeadlines struct {
	items []dto.Headline
	err   error
}

func (f fakeHeadlines) Latest(context.Context) ([]dto.Headline, error) {
	return f.items, f.err
}

type sentMessage struct {
	Title string
	Body  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{Title: title, Body: body})
	return n.err
}

func (n *recordingNotifier) Sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

// stubSignalService returns canned signals and records call order. When block is set each call
// waits on it after signalling started.
type stubSignalService struct {
	mu      sync.Mutex
	calls   []string
	types   map[string]entity.SignalType
	started chan struct{}
	block   chan struct{}
}

func (s *stubSignalService) ClassifyInstrument(ctx context.Context, snapshot entity.InstrumentSnapshot) entity.ClassifiedSignal {
	s.mu.Lock()
	s.calls = append(s.calls, snapshot.Symbol)
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
		}
	}

	typ := entity.SignalNeutral
	if t, ok := s.types[snapshot.Symbol]; ok {
		typ = t
	}
	return entity.ClassifiedSignal{ID: "sig-" + snapshot.Symbol, Symbol: snapshot.Symbol, Type: typ, Confidence: 0.5, DetectedPattern: "Flag"}
}

func (s *stubSignalService) ClassifyMarket(context.Context) entity.MarketOutlook {
	return entity.MarketOutlook{Sentiment: entity.SentimentNeutral}
}

func (s *stubSignalService) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type recordingConsumer struct {
	mu      sync.Mutex
	symbols []string
}

func (c *recordingConsumer) OnSignal(_ context.Context, snapshot entity.InstrumentSnapshot, _ entity.ClassifiedSignal) {
	c.mu.Lock()
	c.symbols = append(c.symbols, snapshot.Symbol)
	c.mu.Unlock()
}

func universe(n int) []entity.InstrumentSnapshot {
	out := make([]entity.InstrumentSnapshot, n)
	for i := range out {
		out[i] = entity.InstrumentSnapshot{
			Symbol:         fmt.Sprintf("T%02d", i),
			Name:           fmt.Sprintf("Ticker %d", i),
			Price:          100,
			RelativeVolume: 1,
			History:        []entity.PricePoint{{Date: "2024-06-14"}, {Date: "2024-06-15"}},
		}
	}
	return out
}

// pipeline wires the real alert services over in-memory stores.
type pipeline struct {
	cfg           *config.Config
	clock         *testClock
	notifier      *recordingNotifier
	notifications NotificationService
	dispatcher    DispatchService
	alerts        AlertService
}

func newPipeline() *pipeline {
	cfg := testConfig()
	clock := newTestClock()
	n := &recordingNotifier{}
	log := logger.NewNop()
	notifications := NewNotificationService(cfg, log, clock.Now)
	dispatcher := NewDispatchService(cfg, log, repository.NewMemoryDispatchRepository(), n, metrics.NewNop(), clock.Now)
	return &pipeline{
		cfg:           cfg,
		clock:         clock,
		notifier:      n,
		notifications: notifications,
		dispatcher:    dispatcher,
		alerts:        NewAlertService(cfg, log, notifications, dispatcher),
	}
}
