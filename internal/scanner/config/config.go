package config

import (
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/pkg/config"
)

// Scanner holds scan orchestration settings.
type Scanner struct {
	BatchSize        int           `mapstructure:"batch_size" validate:"gt=0"`
	StepDelay        time.Duration `mapstructure:"step_delay" validate:"gte=0"`
	ScanCron         string        `mapstructure:"scan_cron"`
	BriefingCron     string        `mapstructure:"briefing_cron"`
	ScanOnStart      bool          `mapstructure:"scan_on_start"`
	AnalyzeOnStart   string        `mapstructure:"analyze_on_start"`
	AnalysisTimeout  time.Duration `mapstructure:"analysis_timeout" validate:"gt=0"`
	HistoryForPrompt int           `mapstructure:"history_for_prompt" validate:"gt=0"`
}

// Market holds synthetic market data settings.
type Market struct {
	Window       int                 `mapstructure:"window" validate:"gt=0"`
	Volatility   float64             `mapstructure:"volatility" validate:"gt=0,lte=1"`
	MinBasePrice float64             `mapstructure:"min_base_price" validate:"gt=0"`
	MaxBasePrice float64             `mapstructure:"max_base_price" validate:"gtfield=MinBasePrice"`
	Seed         uint64              `mapstructure:"seed"`
	Universe     []entity.Instrument `mapstructure:"universe" validate:"dive"`
}

// Alert holds the dispatch thresholds and the fallback classification thresholds.
type Alert struct {
	DispatchConfidence           float64 `mapstructure:"dispatch_confidence" validate:"gte=0,lte=1"`
	DispatchRelativeVolume       float64 `mapstructure:"dispatch_relative_volume" validate:"gte=0"`
	FallbackStrongRelativeVolume float64 `mapstructure:"fallback_strong_relative_volume" validate:"gte=0"`
	FallbackSpikeRelativeVolume  float64 `mapstructure:"fallback_spike_relative_volume" validate:"gte=0"`
	FallbackConfidence           float64 `mapstructure:"fallback_confidence" validate:"gte=0,lte=1"`
	Store                        string  `mapstructure:"store" validate:"oneof=memory redis"`
	LinkBaseURL                  string  `mapstructure:"link_base_url"`
	Recipient                    string  `mapstructure:"recipient"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model" validate:"required"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gt=0"`
	Timeout             time.Duration `mapstructure:"timeout" validate:"gt=0"`
	GoogleSearch        bool          `mapstructure:"google_search"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider" validate:"oneof=gemini none"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token" validate:"required_if=Enabled true"`
	ChatID   int64  `mapstructure:"chat_id" validate:"required_if=Enabled true"`
}

// News holds the RSS feeds whose headlines are added to the market briefing prompt.
type News struct {
	FeedURLs []string      `mapstructure:"feed_urls" validate:"dive,url"`
	MaxItems int           `mapstructure:"max_items" validate:"gte=0"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Notification holds local feed settings.
type Notification struct {
	MaxItems int `mapstructure:"max_items" validate:"gt=0"`
}

// Config holds the full configuration for the scanner service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	Redis        config.Redis  `mapstructure:"redis"`
	Scanner      Scanner       `mapstructure:"scanner"`
	Market       Market        `mapstructure:"market"`
	Alert        Alert         `mapstructure:"alert"`
	AI           AI            `mapstructure:"ai"`
	Gemini       Gemini        `mapstructure:"gemini"`
	Telegram     Telegram      `mapstructure:"telegram"`
	News         News          `mapstructure:"news"`
	Notification Notification  `mapstructure:"notification"`
}

// Defaults returns the default value for every scalar key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":     "signal-scanner",
		"app.env":      "development",
		"app.version":  "1.0.0",
		"logger.level": "info",

		"logger.encoding": "json",
		"api.port":        8080,
		"redis.host":      "localhost",
		"redis.port":      6379,
		"redis.pool_size": 10,
		"redis.password":  "",
		"redis.db":        0,

		"scanner.batch_size":         10,
		"scanner.step_delay":         1500 * time.Millisecond,
		"scanner.scan_cron":          "",
		"scanner.briefing_cron":      "0 8 * * 1-5",
		"scanner.scan_on_start":      false,
		"scanner.analyze_on_start":   "AAPL",
		"scanner.analysis_timeout":   60 * time.Second,
		"scanner.history_for_prompt": 10,

		"market.window":         30,
		"market.volatility":     0.02,
		"market.min_base_price": 100.0,
		"market.max_base_price": 600.0,
		"market.seed":           0,

		"alert.dispatch_confidence":             0.8,
		"alert.dispatch_relative_volume":        2.2,
		"alert.fallback_strong_relative_volume": 2.2,
		"alert.fallback_spike_relative_volume":  2.0,
		"alert.fallback_confidence":             0.65,
		"alert.store":                           "memory",
		"alert.link_base_url":                   "https://tradepulse-ai.app",
		"alert.recipient":                       "SMS USER",

		"ai.provider":                   "gemini",
		"gemini.api_key":                "",
		"gemini.model":                  "gemini-2.5-flash",
		"gemini.max_request_per_minute": 15,
		"gemini.timeout":                45 * time.Second,
		"gemini.google_search":          true,

		"telegram.enabled":   false,
		"telegram.bot_token": "",
		"telegram.chat_id":   0,

		"news.max_items": 5,
		"news.timeout":   10 * time.Second,

		"notification.max_items": 200,
	}
}

// Load loads the scanner configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, Defaults()); err != nil {
		return nil, err
	}
	if len(cfg.Market.Universe) == 0 {
		cfg.Market.Universe = append([]entity.Instrument(nil), entity.DefaultUniverse...)
	}
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
