package service

import (
	"context"
	"fmt"
	"time"

	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ScheduleService runs the periodic scan and the market briefing on cron specs.
type ScheduleService interface {
	Start(ctx context.Context) error
	Stop() context.Context
	Entries() []cron.Entry
}

// NewScheduleService creates a new schedule service. Jobs run in loc; a nil loc means time.Local.
func NewScheduleService(cfg *config.Config, log *logger.Logger, stocks StockService, scans ScanService, briefing BriefingService, loc *time.Location) ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	cronLogger := cronLogAdapter{logger: log}
	return &scheduleService{
		cfg:      cfg,
		logger:   log,
		stocks:   stocks,
		scans:    scans,
		briefing: briefing,
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

type scheduleService struct {
	cfg      *config.Config
	logger   *logger.Logger
	stocks   StockService
	scans    ScanService
	briefing BriefingService
	cron     *cron.Cron
}

// Start registers the configured jobs and starts the cron loop. Jobs run with ctx.
func (s *scheduleService) Start(ctx context.Context) error {
	if spec := s.cfg.Scanner.ScanCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.runScan(ctx) }); err != nil {
			return fmt.Errorf("invalid scan cron %q: %w", spec, err)
		}
		s.logger.Info("Scan job scheduled", logger.StringField("cron", spec))
	}

	if spec := s.cfg.Scanner.BriefingCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.briefing.Run(ctx) }); err != nil {
			return fmt.Errorf("invalid briefing cron %q: %w", spec, err)
		}
		s.logger.Info("Briefing job scheduled", logger.StringField("cron", spec))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler. The returned context is done when running jobs have finished.
func (s *scheduleService) Stop() context.Context {
	return s.cron.Stop()
}

func (s *scheduleService) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *scheduleService) runScan(ctx context.Context) {
	report, err := s.scans.RunScan(ctx, s.stocks.List(ctx, true))
	if err != nil {
		s.logger.WarnContext(ctx, "Scheduled scan stopped", logger.ErrorField(err))
		return
	}
	if report.Skipped {
		s.logger.InfoContext(ctx, "Scheduled scan skipped, previous scan still running")
	}
}

type cronLogAdapter struct {
	logger *logger.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
