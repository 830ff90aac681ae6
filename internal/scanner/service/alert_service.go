package service

import (
	"context"
	"fmt"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/pkg/common"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/utils"
)

const (
	notificationReasoningChars = 60
	marketDetailChars          = 50
)

// SignalConsumer receives every classified instrument, in classification order.
type SignalConsumer interface {
	OnSignal(ctx context.Context, snapshot entity.InstrumentSnapshot, signal entity.ClassifiedSignal)
}

// AlertService turns signals and outlooks into feed notifications and alert dispatches.
type AlertService interface {
	SignalConsumer
	OnOutlook(ctx context.Context, outlook entity.MarketOutlook)
}

// NewAlertService creates a new alert service.
func NewAlertService(cfg *config.Config, log *logger.Logger, notifications NotificationService, dispatcher DispatchService) AlertService {
	return &alertService{
		cfg:           cfg,
		logger:        log,
		notifications: notifications,
		dispatcher:    dispatcher,
	}
}

type alertService struct {
	cfg           *config.Config
	logger        *logger.Logger
	notifications NotificationService
	dispatcher    DispatchService
}

// ShouldDispatch reports whether a non-neutral signal qualifies for an outbound alert.
func ShouldDispatch(alert config.Alert, signal entity.ClassifiedSignal, relativeVolume float64) bool {
	strong := signal.Type.IsStrong()
	confident := signal.Confidence > alert.DispatchConfidence
	heavyVolume := relativeVolume > alert.DispatchRelativeVolume
	return strong || confident || heavyVolume
}

func (s *alertService) OnSignal(ctx context.Context, snapshot entity.InstrumentSnapshot, signal entity.ClassifiedSignal) {
	if signal.Type == entity.SignalNeutral {
		return
	}

	severity := entity.SeverityWarning
	if signal.Type.IsBuy() {
		severity = entity.SeveritySuccess
	}
	s.notifications.Add(ctx,
		fmt.Sprintf("%s: %s", signal.Type.Label(), snapshot.Symbol),
		fmt.Sprintf("%s - %s...", signal.DetectedPattern, utils.Truncate(signal.Reasoning, notificationReasoningChars)),
		severity,
	)

	if !ShouldDispatch(s.cfg.Alert, signal, snapshot.RelativeVolume) {
		return
	}
	if _, err := s.dispatcher.Dispatch(ctx, snapshot.Symbol, string(signal.Type), signal.DetectedPattern); err != nil {
		s.logger.ErrorContext(ctx, "Failed to dispatch signal alert", logger.StringField("symbol", snapshot.Symbol), logger.ErrorField(err))
	}
}

func (s *alertService) OnOutlook(ctx context.Context, outlook entity.MarketOutlook) {
	s.notifications.Add(ctx, fmt.Sprintf("Market Trend: %s", outlook.Sentiment), outlook.Summary, outlook.Sentiment.Severity())

	if outlook.Sentiment == entity.SentimentNeutral {
		return
	}
	detail := utils.Truncate(outlook.Summary, marketDetailChars)
	if _, err := s.dispatcher.Dispatch(ctx, common.GlobalMarketTarget, string(outlook.Sentiment), detail); err != nil {
		s.logger.ErrorContext(ctx, "Failed to dispatch market alert", logger.ErrorField(err))
	}
}
