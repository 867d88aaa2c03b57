package handlers

import (
	"log"
	"net/http"

	"grid-backtest/internal/api/models"
	"grid-backtest/internal/data"

	"github.com/gin-gonic/gin"
)

// MarketDataHandler serves raw bars for charting.
type MarketDataHandler struct {
	dataClient *data.HistoricalClient
}

// NewMarketDataHandler creates a new market data handler
func NewMarketDataHandler(dataClient *data.HistoricalClient) *MarketDataHandler {
	if dataClient == nil {
		dataClient = data.NewHistoricalClient("")
	}
	return &MarketDataHandler{dataClient: dataClient}
}

// GetHistorical handles GET /api/v1/historical?symbol=...&duration=...&bar_size=...
func (h *MarketDataHandler) GetHistorical(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_PARAM",
				Message: "symbol query parameter is required",
			},
		})
		return
	}
	duration := c.DefaultQuery("duration", "1 D")
	barSize := c.DefaultQuery("bar_size", "1 min")

	bars, err := h.dataClient.FetchBars(symbol, duration, barSize)
	if err != nil {
		respondDataError(c, err)
		return
	}

	log.Printf("MarketDataHandler: returning %d bars for symbol=%s", len(bars), symbol)
	c.JSON(http.StatusOK, models.HistoricalResponse{
		Result: "success",
		Bars:   bars,
	})
}

// MinuteChart handles POST /api/v1/chart/minute
func (h *MarketDataHandler) MinuteChart(c *gin.Context) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	bars, err := h.dataClient.FetchBars(req.Ticker, req.Duration, req.BarSize)
	if err != nil {
		respondDataError(c, err)
		return
	}

	log.Printf("MarketDataHandler: returning %d chart bars for ticker=%s", len(bars), req.Ticker)
	c.JSON(http.StatusOK, models.ChartResponse{
		Result: "success",
		Chart:  bars,
	})
}
