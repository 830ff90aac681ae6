package http

import (
	"context"
	"net/http"

	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScanHandler starts background scans and reports their status.
type ScanHandler struct {
	baseCtx      context.Context
	scanService  service.ScanService
	stockService service.StockService
	logger       *logger.Logger
}

// NewScanHandler creates a new ScanHandler. Scans started over HTTP run with baseCtx, so they outlive
// the request and stop on shutdown.
func NewScanHandler(baseCtx context.Context, scanService service.ScanService, stockService service.StockService, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{baseCtx: baseCtx, scanService: scanService, stockService: stockService, logger: logger}
}

// RegisterRoutes registers the scan routes to the Echo group.
func (h *ScanHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.StartScan)
	g.GET("/status", h.GetStatus)
}

// StartScan godoc
// @Summary Start a scan in the background
// @Tags scans
// @Produce  json
// @Success 202 {object} dto.StartScanResponse
// @Failure 409 {object} dto.StartScanResponse
// @Router /scans [post]
func (h *ScanHandler) StartScan(c echo.Context) error {
	universe := h.stockService.List(c.Request().Context(), true)
	if !h.scanService.StartScan(h.baseCtx, universe) {
		return c.JSON(http.StatusConflict, dto.StartScanResponse{Accepted: false, Message: "A scan is already running"})
	}
	h.logger.Info("Scan started over HTTP", logger.IntField("universe", len(universe)))
	return c.JSON(http.StatusAccepted, dto.StartScanResponse{Accepted: true, Message: "Scan started"})
}

// GetStatus godoc
// @Summary Get the scanner status
// @Tags scans
// @Produce  json
// @Success 200 {object} dto.ScanStatus
// @Router /scans/status [get]
func (h *ScanHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scanService.Status())
}
