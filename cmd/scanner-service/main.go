package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-signal-scanner/internal/scanner/config"
	delivery "golang-signal-scanner/internal/scanner/delivery/http"
	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the signal scanner service",
	Run:   runServe,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Builds a universe, runs one scan and prints the report",
	Run:   runScan,
}

func loadConfig() (*config.Config, *logger.Logger) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfig()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Signal Scanner Service", logger.Field("name", cfg.App.Name), logger.IntField("universe", len(cfg.Market.Universe)))

	a, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize service", logger.ErrorField(err))
	}
	defer a.Close()

	if err := service.Bootstrap(ctx, cfg, appLogger, a.stocks, a.briefing, a.scans); err != nil {
		appLogger.Fatal("Failed to bootstrap", logger.ErrorField(err))
	}

	// Start scheduler
	scheduleSvc := service.NewScheduleService(cfg, appLogger, a.stocks, a.scans, a.briefing, a.location)
	if err := scheduleSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := delivery.NewRouter(delivery.Handlers{
		Stocks:        delivery.NewStockHandler(a.stocks, appLogger),
		Signals:       delivery.NewSignalHandler(a.stocks, appLogger),
		Scans:         delivery.NewScanHandler(ctx, a.scans, a.stocks, appLogger),
		Outlook:       delivery.NewOutlookHandler(a.briefing, appLogger),
		Notifications: delivery.NewNotificationHandler(a.notifications, appLogger),
		Dispatches:    delivery.NewDispatchHandler(a.dispatcher, appLogger),
	}, promhttp.Handler())

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-scheduleSvc.Stop().Done():
	case <-shutdownCtx.Done():
		appLogger.Warn("Scheduled jobs did not finish before shutdown")
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runScan(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfig()
	defer func() { _ = appLogger.Sync() }()

	a, err := newApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize service", logger.ErrorField(err))
	}
	defer a.Close()

	universe, err := a.stocks.Refresh(ctx)
	if err != nil {
		appLogger.Fatal("Failed to build universe", logger.ErrorField(err))
	}

	report, err := a.scans.RunScan(ctx, universe)
	if err != nil {
		appLogger.Warn("Scan stopped early", logger.ErrorField(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		appLogger.Error("Failed to write report", logger.ErrorField(err))
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "scanner-service",
		Short: "Signal scanner for a synthetic ticker universe",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, scanCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scanner-service CLI: %s\n", err)
		os.Exit(1)
	}
}
