package http

import (
	"errors"
	"net/http"

	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the local notification feed.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListNotifications)
	g.POST("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Dismiss)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notificationService.List(c.Request().Context()))
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return notificationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) Dismiss(c echo.Context) error {
	if err := h.notificationService.Dismiss(c.Request().Context(), c.Param("id")); err != nil {
		return notificationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func notificationError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrNotificationNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
