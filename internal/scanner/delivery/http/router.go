package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the route handlers mounted under /api/v1.
type Handlers struct {
	Stocks        *StockHandler
	Signals       *SignalHandler
	Scans         *ScanHandler
	Outlook       *OutlookHandler
	Notifications *NotificationHandler
	Dispatches    *DispatchHandler
}

// NewRouter builds the Echo server. metricsHandler is mounted at /metrics when non-nil.
func NewRouter(h Handlers, metricsHandler http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	apiV1 := e.Group("/api/v1")
	h.Stocks.RegisterRoutes(apiV1.Group("/stocks"))
	h.Signals.RegisterRoutes(apiV1.Group("/signals"))
	h.Scans.RegisterRoutes(apiV1.Group("/scans"))
	h.Outlook.RegisterRoutes(apiV1.Group("/outlook"))
	h.Notifications.RegisterRoutes(apiV1.Group("/notifications"))
	h.Dispatches.RegisterRoutes(apiV1.Group("/dispatches"))
	return e
}
