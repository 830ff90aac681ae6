package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/pkg/common"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"
	"golang-signal-scanner/pkg/notifier"
	"golang-signal-scanner/pkg/utils"

	"github.com/google/uuid"
)

// DispatchService sends at most one alert per target, label and local calendar day.
type DispatchService interface {
	// Dispatch returns a nil record when the key was already used.
	Dispatch(ctx context.Context, target, label, detail string) (*entity.DispatchRecord, error)
	List(ctx context.Context) ([]entity.DispatchRecord, error)
}

// NewDispatchService creates a new dispatch service.
func NewDispatchService(cfg *config.Config, log *logger.Logger, dispatchRepo repository.DispatchRepository, n notifier.Notifier, recorder metrics.Recorder, now utils.Clock) DispatchService {
	return &dispatchService{
		cfg:          cfg,
		logger:       log,
		dispatchRepo: dispatchRepo,
		notifier:     n,
		metrics:      recorder,
		now:          now,
	}
}

type dispatchService struct {
	cfg          *config.Config
	logger       *logger.Logger
	dispatchRepo repository.DispatchRepository
	notifier     notifier.Notifier
	metrics      metrics.Recorder
	now          utils.Clock
}

// DispatchKey builds the dedup key of an alert attempted at t.
func DispatchKey(target, label string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s", target, label, utils.DateKey(t))
}

// FormatAlertContent renders the alert body sent to the recipient.
func FormatAlertContent(target, label, detail, linkBaseURL string) string {
	return fmt.Sprintf("⚠️ TRADE ALERT: %s\nSIGNAL: %s\nDETAIL: %s\nAnalyze now: %s/t/%s",
		target, label, detail, strings.TrimRight(linkBaseURL, "/"), target)
}

func (s *dispatchService) Dispatch(ctx context.Context, target, label, detail string) (*entity.DispatchRecord, error) {
	now := s.now()
	key := DispatchKey(target, label, now)
	ctx = logger.WithContextFields(ctx, logger.StringField("dispatch_key", key))

	reserved, err := s.dispatchRepo.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve dispatch key: %w", err)
	}
	if !reserved {
		s.metrics.RecordDispatchSkipped()
		s.logger.DebugContext(ctx, "Alert already dispatched today, skipping")
		return nil, nil
	}

	recipient := s.cfg.Alert.Recipient
	if recipient == "" {
		recipient = common.DefaultRecipient
	}

	record := &entity.DispatchRecord{
		ID:           uuid.NewString(),
		Key:          key,
		Target:       target,
		SignalLabel:  label,
		Detail:       detail,
		Recipient:    recipient,
		Content:      FormatAlertContent(target, label, detail, s.cfg.Alert.LinkBaseURL),
		Status:       entity.DispatchStatusSent,
		DispatchedAt: now,
	}

	kind := "signal"
	if target == common.GlobalMarketTarget {
		kind = "market"
	}

	notifyErr := s.notifier.Notify("Opportunity: "+target, record.Content)
	if notifyErr != nil {
		record.Status = entity.DispatchStatusFailed
		s.logger.ErrorContext(ctx, "Failed to deliver alert", logger.ErrorField(notifyErr))
	}
	s.metrics.RecordDispatch(kind, string(record.Status))

	if err := s.dispatchRepo.Save(ctx, *record); err != nil {
		return record, fmt.Errorf("failed to save dispatch record: %w", err)
	}

	s.logger.InfoContext(ctx, "Alert dispatched", logger.StringField("target", target), logger.StringField("status", string(record.Status)))
	if notifyErr != nil {
		return record, fmt.Errorf("failed to notify %s: %w", recipient, notifyErr)
	}
	return record, nil
}

func (s *dispatchService) List(ctx context.Context) ([]entity.DispatchRecord, error) {
	records, err := s.dispatchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch records: %w", err)
	}
	return records, nil
}
