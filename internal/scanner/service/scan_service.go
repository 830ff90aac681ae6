package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"
	"golang-signal-scanner/pkg/utils"

	"github.com/google/uuid"
)

// ProgressHook is called after each scan step with the rounded completion percentage.
type ProgressHook func(progress int)

// ScanService runs paced, single-flight scans over the head of the universe.
type ScanService interface {
	// RunScan blocks until the scan finishes. A call made while another scan runs returns a
	// report with Skipped set and has no other effect.
	RunScan(ctx context.Context, universe []entity.InstrumentSnapshot) (*dto.ScanReport, error)
	// StartScan claims the scanner and runs the scan in the background. It returns false when
	// a scan is already running.
	StartScan(ctx context.Context, universe []entity.InstrumentSnapshot) bool
	Status() dto.ScanStatus
}

type ScanOption func(*scanService)

// WithProgressHook registers h to receive progress updates.
func WithProgressHook(h ProgressHook) ScanOption {
	return func(s *scanService) { s.progressHooks = append(s.progressHooks, h) }
}

// NewScanService creates a new scan service.
func NewScanService(cfg *config.Config, log *logger.Logger, signalSvc SignalService, signalRepo repository.SignalRepository,
	consumer SignalConsumer, notifications NotificationService, recorder metrics.Recorder, now utils.Clock, opts ...ScanOption) ScanService {
	s := &scanService{
		cfg:           cfg,
		logger:        log,
		signalSvc:     signalSvc,
		signalRepo:    signalRepo,
		consumer:      consumer,
		notifications: notifications,
		metrics:       recorder,
		now:           now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scanService struct {
	cfg           *config.Config
	logger        *logger.Logger
	signalSvc     SignalService
	signalRepo    repository.SignalRepository
	consumer      SignalConsumer
	notifications NotificationService
	metrics       metrics.Recorder
	now           utils.Clock
	progressHooks []ProgressHook

	scanning atomic.Bool
	progress atomic.Int32

	mu         sync.RWMutex
	lastReport *dto.ScanReport
}

func (s *scanService) RunScan(ctx context.Context, universe []entity.InstrumentSnapshot) (*dto.ScanReport, error) {
	if !s.scanning.CompareAndSwap(false, true) {
		s.logger.InfoContext(ctx, "Scan already in progress, skipping")
		return &dto.ScanReport{Skipped: true}, nil
	}
	s.progress.Store(0)
	defer s.scanning.Store(false)
	return s.run(ctx, universe)
}

func (s *scanService) StartScan(ctx context.Context, universe []entity.InstrumentSnapshot) bool {
	if !s.scanning.CompareAndSwap(false, true) {
		return false
	}
	s.progress.Store(0)
	utils.GoSafe(s.logger, func() {
		defer s.scanning.Store(false)
		if _, err := s.run(ctx, universe); err != nil {
			s.logger.WarnContext(ctx, "Background scan stopped", logger.ErrorField(err))
		}
	})
	return true
}

func (s *scanService) Status() dto.ScanStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.ScanStatus{
		Scanning:   s.scanning.Load(),
		Progress:   int(s.progress.Load()),
		LastReport: s.lastReport,
	}
}

func (s *scanService) run(ctx context.Context, universe []entity.InstrumentSnapshot) (*dto.ScanReport, error) {
	batch := universe
	if len(batch) > s.cfg.Scanner.BatchSize {
		batch = batch[:s.cfg.Scanner.BatchSize]
	}
	n := len(batch)

	report := &dto.ScanReport{
		ID:        uuid.NewString(),
		Total:     n,
		Results:   make([]dto.ScanResult, 0, n),
		StartedAt: s.now(),
	}
	ctx = logger.WithContextFields(ctx, logger.StringField("scan_id", report.ID))
	s.setProgress(0, false)

	s.logger.InfoContext(ctx, "Scan started", logger.IntField("instruments", n))
	s.notifications.Add(ctx, "Scanner Active", fmt.Sprintf("Analyzing top %d tickers for high-probability setups...", n), entity.SeverityInfo)

	for i, snapshot := range batch {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, report, err)
		}

		signal := s.signalSvc.ClassifyInstrument(ctx, snapshot)
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, report, err)
		}

		s.signalRepo.Save(ctx, signal)
		s.consumer.OnSignal(ctx, snapshot, signal)
		report.Results = append(report.Results, dto.ScanResult{Snapshot: snapshot.WithoutHistory(), Signal: signal})

		s.setProgress(int(math.Round(100*float64(i+1)/float64(n))), true)

		if i < n-1 {
			if err := sleepContext(ctx, s.cfg.Scanner.StepDelay); err != nil {
				return s.finish(ctx, report, err)
			}
		}
	}

	return s.finish(ctx, report, nil)
}

func (s *scanService) setProgress(progress int, notify bool) {
	s.progress.Store(int32(progress))
	s.metrics.RecordScanProgress(progress)
	if !notify {
		return
	}
	for _, h := range s.progressHooks {
		h(progress)
	}
}

func (s *scanService) finish(ctx context.Context, report *dto.ScanReport, cause error) (*dto.ScanReport, error) {
	report.FinishedAt = s.now()
	elapsed := report.FinishedAt.Sub(report.StartedAt)

	outcome := "completed"
	if cause != nil {
		report.Cancelled = true
		outcome = "cancelled"
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	s.metrics.RecordScan(outcome, len(report.Results), elapsed)

	if cause != nil {
		s.logger.WarnContext(ctx, "Scan cancelled", logger.IntField("completed", len(report.Results)), logger.ErrorField(cause))
		s.notifications.Add(ctx, "Scan Cancelled", fmt.Sprintf("Scanner stopped after %d of %d tickers.", len(report.Results), report.Total), entity.SeverityWarning)
		return report, cause
	}

	s.logger.InfoContext(ctx, "Scan completed", logger.IntField("instruments", len(report.Results)), logger.DurationField("elapsed", elapsed))
	s.notifications.Add(ctx, "Scan Complete", "Market-wide sweep finished. Alerts dispatched where applicable.", entity.SeveritySuccess)
	return report, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
