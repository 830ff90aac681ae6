package http

import (
	"net/http"

	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DispatchHandler serves the log of dispatched alerts.
type DispatchHandler struct {
	dispatchService service.DispatchService
	logger          *logger.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatchService service.DispatchService, logger *logger.Logger) *DispatchHandler {
	return &DispatchHandler{dispatchService: dispatchService, logger: logger}
}

// RegisterRoutes registers the dispatch routes to the Echo group.
func (h *DispatchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListDispatches)
}

// ListDispatches returns dispatched alerts, newest first.
func (h *DispatchHandler) ListDispatches(c echo.Context) error {
	records, err := h.dispatchService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list dispatches", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, records)
}
