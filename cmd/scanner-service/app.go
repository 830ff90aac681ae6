package main

import (
	"context"
	"fmt"
	"time"

	"golang-signal-scanner/internal/marketdata"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"
	"golang-signal-scanner/pkg/metrics"
	"golang-signal-scanner/pkg/notifier"
	"golang-signal-scanner/pkg/redis"
	"golang-signal-scanner/pkg/telegram"
	"golang-signal-scanner/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/genai"
)

// app holds the wired services of one process.
type app struct {
	cfg           *config.Config
	logger        *logger.Logger
	location      *time.Location
	stocks        service.StockService
	scans         service.ScanService
	briefing      service.BriefingService
	notifications service.NotificationService
	dispatcher    service.DispatchService
	closers       []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("Failed to close resource", logger.ErrorField(err))
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: appLogger, location: time.Local}
	if cfg.App.TimeZone != "" {
		loc, err := time.LoadLocation(cfg.App.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", cfg.App.TimeZone, err)
		}
		a.location = loc
	}
	clock := utils.LocalClock(cfg.App.TimeZone)
	recorder := metrics.New(prometheus.DefaultRegisterer)

	// Initialize AI provider
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			appLogger.Warn("Gemini API key not set, classifier runs on fallback only")
			aiRepo = repository.NewDisabledAIRepository()
			break
		}
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient.Models)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI repository: %w", err)
		}
		aiRepo = repo
	default:
		aiRepo = repository.NewDisabledAIRepository()
	}

	// Initialize notifiers
	notifiers := []notifier.Notifier{notifier.NewLogNotifier(appLogger)}
	if cfg.Telegram.Enabled {
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
		notifiers = append(notifiers, telegramNotifier)
	}

	// Initialize dispatch store
	var dispatchRepo repository.DispatchRepository
	switch cfg.Alert.Store {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		a.closers = append(a.closers, redisClient.Close)
		dispatchRepo = repository.NewRedisDispatchRepository(redisClient.Client, appLogger)
	default:
		dispatchRepo = repository.NewMemoryDispatchRepository()
	}

	// Initialize repositories
	gen := marketdata.NewGenerator(marketdata.NewSource(cfg.Market.Seed), clock)
	builder := marketdata.NewBuilder(gen, marketdata.BuilderConfig{
		Window:       cfg.Market.Window,
		Volatility:   cfg.Market.Volatility,
		MinBasePrice: cfg.Market.MinBasePrice,
		MaxBasePrice: cfg.Market.MaxBasePrice,
	})
	marketRepo := repository.NewMarketDataRepository(builder, cfg.Market.Universe, appLogger)
	signalRepo := repository.NewSignalRepository()
	headlineRepo := repository.NewRSSHeadlineRepository(cfg, appLogger)

	// Initialize services
	signalSvc := service.NewSignalService(cfg, appLogger, aiRepo, headlineRepo, recorder, clock)
	a.notifications = service.NewNotificationService(cfg, appLogger, clock)
	a.dispatcher = service.NewDispatchService(cfg, appLogger, dispatchRepo, notifier.NewMultiNotifier(notifiers...), recorder, clock)
	alerts := service.NewAlertService(cfg, appLogger, a.notifications, a.dispatcher)
	a.stocks = service.NewStockService(appLogger, marketRepo, signalRepo, signalSvc, alerts)
	a.briefing = service.NewBriefingService(appLogger, signalSvc, alerts)
	a.scans = service.NewScanService(cfg, appLogger, signalSvc, signalRepo, alerts, a.notifications, recorder, clock,
		service.WithProgressHook(func(progress int) {
			appLogger.Debug("Scan progress", logger.IntField("progress", progress))
		}))

	return a, nil
}
