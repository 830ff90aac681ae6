package service

import (
	"context"
	"sync"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/pkg/logger"
)

// BriefingService produces the market outlook and keeps the current one.
type BriefingService interface {
	Run(ctx context.Context) entity.MarketOutlook
	Current(ctx context.Context) (entity.MarketOutlook, bool)
}

// NewBriefingService creates a new briefing service.
func NewBriefingService(log *logger.Logger, signalSvc SignalService, alerts AlertService) BriefingService {
	return &briefingService{
		logger:    log,
		signalSvc: signalSvc,
		alerts:    alerts,
	}
}

type briefingService struct {
	logger    *logger.Logger
	signalSvc SignalService
	alerts    AlertService

	mu      sync.RWMutex
	current *entity.MarketOutlook
}

// Run classifies the market, replaces the current outlook and feeds it to the alert pipeline.
func (s *briefingService) Run(ctx context.Context) entity.MarketOutlook {
	outlook := s.signalSvc.ClassifyMarket(ctx)

	s.mu.Lock()
	s.current = &outlook
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Market briefing updated", logger.StringField("sentiment", string(outlook.Sentiment)), logger.BoolField("fallback", outlook.Fallback))
	s.alerts.OnOutlook(ctx, outlook)
	return outlook
}

func (s *briefingService) Current(_ context.Context) (entity.MarketOutlook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return entity.MarketOutlook{}, false
	}
	return *s.current, true
}
