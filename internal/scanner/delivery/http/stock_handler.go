package http

import (
	"errors"
	"net/http"

	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/internal/scanner/repository"
	"golang-signal-scanner/internal/scanner/service"
	"golang-signal-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for the instrument universe.
type StockHandler struct {
	stockService service.StockService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListStocks)
	g.POST("/refresh", h.RefreshStocks)
	g.GET("/:symbol", h.GetStock)
	g.POST("/:symbol/analyze", h.AnalyzeStock)
}

// ListStocks godoc
// @Summary List the instrument universe
// @Tags stocks
// @Produce  json
// @Param   history  query    bool false    "Include price history"
// @Success 200 {array} entity.InstrumentSnapshot
// @Router /stocks [get]
func (h *StockHandler) ListStocks(c echo.Context) error {
	var req dto.ListStocksRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid query parameters"})
	}
	return c.JSON(http.StatusOK, h.stockService.List(c.Request().Context(), req.History))
}

// GetStock godoc
// @Summary Get one instrument with its history
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} entity.InstrumentSnapshot
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	snapshot, err := h.stockService.Get(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, repository.ErrInstrumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, snapshot)
}

// RefreshStocks regenerates the universe.
func (h *StockHandler) RefreshStocks(c echo.Context) error {
	snapshots, err := h.stockService.Refresh(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to refresh universe", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	for i := range snapshots {
		snapshots[i] = snapshots[i].WithoutHistory()
	}
	return c.JSON(http.StatusOK, snapshots)
}

// AnalyzeStock godoc
// @Summary Classify one instrument now
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Param   force  query    bool false    "Re-classify even when a signal exists"
// @Success 200 {object} entity.ClassifiedSignal
// @Success 201 {object} entity.ClassifiedSignal
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/analyze [post]
func (h *StockHandler) AnalyzeStock(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid query parameters"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	signal, fresh, err := h.stockService.Analyze(c.Request().Context(), req.Symbol, req.Force)
	if err != nil {
		if errors.Is(err, repository.ErrInstrumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if fresh {
		return c.JSON(http.StatusCreated, signal)
	}
	return c.JSON(http.StatusOK, signal)
}
