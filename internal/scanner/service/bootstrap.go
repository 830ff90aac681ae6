package service

import (
	"context"
	"fmt"
	"strings"

	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/pkg/logger"
)

// Bootstrap performs the initial load: build the universe, run the market briefing, then analyze
// the configured start instrument (the first instrument when it is not in the universe). An empty
// analyze_on_start skips the analysis. With scan_on_start a background scan is started last.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger, stocks StockService, briefing BriefingService, scans ScanService) error {
	snapshots, err := stocks.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to build initial universe: %w", err)
	}

	briefing.Run(ctx)

	if symbol := strings.TrimSpace(cfg.Scanner.AnalyzeOnStart); symbol != "" && len(snapshots) > 0 {
		target := snapshots[0].Symbol
		for _, s := range snapshots {
			if strings.EqualFold(s.Symbol, symbol) {
				target = s.Symbol
				break
			}
		}
		if _, _, err := stocks.Analyze(ctx, target, true); err != nil {
			log.WarnContext(ctx, "Initial analysis failed", logger.StringField("symbol", target), logger.ErrorField(err))
		}
	}

	if cfg.Scanner.ScanOnStart {
		scans.StartScan(ctx, stocks.List(ctx, true))
	}
	return nil
}
