package http

import (
	"net/http"

	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OutlookHandler serves the market briefing.
type OutlookHandler struct {
	briefingService service.BriefingService
	logger          *logger.Logger
}

// NewOutlookHandler creates a new OutlookHandler.
func NewOutlookHandler(briefingService service.BriefingService, logger *logger.Logger) *OutlookHandler {
	return &OutlookHandler{briefingService: briefingService, logger: logger}
}

// RegisterRoutes registers the outlook routes to the Echo group.
func (h *OutlookHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetOutlook)
	g.POST("/refresh", h.RefreshOutlook)
}

func (h *OutlookHandler) GetOutlook(c echo.Context) error {
	outlook, ok := h.briefingService.Current(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No market briefing yet"})
	}
	return c.JSON(http.StatusOK, outlook)
}

// RefreshOutlook runs the briefing synchronously and returns the new outlook.
func (h *OutlookHandler) RefreshOutlook(c echo.Context) error {
	return c.JSON(http.StatusOK, h.briefingService.Run(c.Request().Context()))
}
