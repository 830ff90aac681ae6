package http

import (
	"net/http"

	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalHandler serves the signal board.
type SignalHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewSignalHandler creates a new SignalHandler.
func NewSignalHandler(stockService service.StockService, logger *logger.Logger) *SignalHandler {
	return &SignalHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the signal routes to the Echo group.
func (h *SignalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListSignals)
	g.GET("/:symbol", h.GetSignal)
}

// ListSignals returns the latest signal of every classified instrument, newest first.
func (h *SignalHandler) ListSignals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.stockService.Signals(c.Request().Context()))
}

func (h *SignalHandler) GetSignal(c echo.Context) error {
	signal, ok := h.stockService.Signal(c.Request().Context(), c.Param("symbol"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No signal for " + c.Param("symbol")})
	}
	return c.JSON(http.StatusOK, signal)
}
