package service

import (
	"context"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"
	"golang-signal-scanner/pkg/utils"

	"github.com/google/uuid"
)

const (
	FallbackReasoning      = "Automated scanner detected anomalous volume activity."
	FallbackSpikePattern   = "Institutional Volume Spike"
	FallbackDefaultPattern = "Standard Trend"
	FallbackMarketSummary  = "Scanner online. Waiting for market metrics to stabilize."
)

// SignalService classifies instruments and the market. It never fails: any collaborator error
// produces the deterministic fallback result.
type SignalService interface {
	ClassifyInstrument(ctx context.Context, snapshot entity.InstrumentSnapshot) entity.ClassifiedSignal
	ClassifyMarket(ctx context.Context) entity.MarketOutlook
}

// NewSignalService creates a new signal service.
func NewSignalService(cfg *config.Config, log *logger.Logger, aiRepo repository.AIRepository, headlineRepo repository.HeadlineRepository, recorder metrics.Recorder, now utils.Clock) SignalService {
	return &signalService{
		cfg:          cfg,
		logger:       log,
		aiRepo:       aiRepo,
		headlineRepo: headlineRepo,
		metrics:      recorder,
		now:          now,
	}
}

type signalService struct {
	cfg          *config.Config
	logger       *logger.Logger
	aiRepo       repository.AIRepository
	headlineRepo repository.HeadlineRepository
	metrics      metrics.Recorder
	now          utils.Clock
}

func (s *signalService) ClassifyInstrument(ctx context.Context, snapshot entity.InstrumentSnapshot) entity.ClassifiedSignal {
	ctx = logger.WithContextFields(ctx, logger.StringField("symbol", snapshot.Symbol))

	ctxTimeout, cancel := context.WithTimeout(ctx, s.cfg.Scanner.AnalysisTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.aiRepo.AnalyzeSignal(ctxTimeout, snapshot)
	s.metrics.RecordLatency("classify_instrument", time.Since(start))

	var signal entity.ClassifiedSignal
	if err != nil {
		s.logger.WarnContext(ctx, "Signal analysis failed, using volume fallback", logger.ErrorField(err))
		signal = s.fallbackSignal(snapshot)
	} else {
		signal = entity.ClassifiedSignal{
			ID:              uuid.NewString(),
			Symbol:          snapshot.Symbol,
			Timestamp:       s.now(),
			Type:            entity.SignalType(result.Type),
			Confidence:      result.Confidence,
			Reasoning:       result.Reasoning,
			DetectedPattern: result.Pattern,
		}
	}

	s.metrics.RecordClassification(snapshot.Symbol, string(signal.Type), signal.Fallback)
	s.logger.InfoContext(ctx, "Instrument classified",
		logger.StringField("type", string(signal.Type)),
		logger.Float64Field("confidence", signal.Confidence),
		logger.Float64Field("relative_volume", snapshot.RelativeVolume),
		logger.BoolField("fallback", signal.Fallback),
	)
	return signal
}

func (s *signalService) fallbackSignal(snapshot entity.InstrumentSnapshot) entity.ClassifiedSignal {
	signalType := entity.SignalNeutral
	if snapshot.RelativeVolume > s.cfg.Alert.FallbackStrongRelativeVolume {
		signalType = entity.SignalStrongBuy
	}
	pattern := FallbackDefaultPattern
	if snapshot.RelativeVolume > s.cfg.Alert.FallbackSpikeRelativeVolume {
		pattern = FallbackSpikePattern
	}

	return entity.ClassifiedSignal{
		ID:              uuid.NewString(),
		Symbol:          snapshot.Symbol,
		Timestamp:       s.now(),
		Type:            signalType,
		Confidence:      s.cfg.Alert.FallbackConfidence,
		Reasoning:       FallbackReasoning,
		DetectedPattern: pattern,
		Fallback:        true,
	}
}

// ClassifyMarket builds the market outlook. Headlines are optional context; failing to fetch them
// does not fail the classification.
func (s *signalService) ClassifyMarket(ctx context.Context) entity.MarketOutlook {
	headlines, err := s.headlineRepo.Latest(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to fetch headlines for market overview", logger.ErrorField(err))
		headlines = nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, s.cfg.Scanner.AnalysisTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.aiRepo.MarketOverview(ctxTimeout, headlines)
	s.metrics.RecordLatency("classify_market", time.Since(start))

	var outlook entity.MarketOutlook
	if err != nil {
		s.logger.WarnContext(ctx, "Market overview failed, using neutral fallback", logger.ErrorField(err))
		outlook = entity.MarketOutlook{
			Sentiment: entity.SentimentNeutral,
			Summary:   FallbackMarketSummary,
			TopNews:   []entity.NewsItem{},
			Timestamp: s.now(),
			Fallback:  true,
		}
	} else {
		news := make([]entity.NewsItem, 0, len(result.Headlines))
		for _, h := range result.Headlines {
			news = append(news, entity.NewsItem{Title: h.Title, URL: h.URL, Source: h.Source})
		}
		outlook = entity.MarketOutlook{
			Sentiment: entity.Sentiment(result.Sentiment),
			Summary:   result.Summary,
			TopNews:   news,
			Timestamp: s.now(),
		}
	}

	s.metrics.RecordBriefing(string(outlook.Sentiment), outlook.Fallback)
	return outlook
}
