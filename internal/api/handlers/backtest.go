package handlers

import (
	"log"
	"net/http"

	"grid-backtest/internal/analysis"
	"grid-backtest/internal/api/models"
	"grid-backtest/internal/backtest"
	"grid-backtest/internal/config"
	"grid-backtest/internal/data"
	"grid-backtest/internal/model"

	"github.com/gin-gonic/gin"
)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	dataClient *data.HistoricalClient
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(dataClient *data.HistoricalClient) *BacktestHandler {
	if dataClient == nil {
		dataClient = data.NewHistoricalClient("")
	}
	return &BacktestHandler{dataClient: dataClient}
}

// RunBacktest handles POST /api/v1/backtest (basic mode: trade list without
// timestamps, core performance fields only).
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	h.runBacktest(c, false)
}

// RunBacktestDetailed handles POST /api/v1/backtest/detailed (adds per-trade
// timestamps, sharpe_ratio, and the summary block). Both modes come from the
// same run; no simulation happens twice.
func (h *BacktestHandler) RunBacktestDetailed(c *gin.Context) {
	h.runBacktest(c, true)
}

func (h *BacktestHandler) runBacktest(c *gin.Context, detailed bool) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := buildGridConfig(req)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	bars, err := h.fetchBars(req)
	if err != nil {
		respondDataError(c, err)
		return
	}

	result, err := backtest.New().Run(cfg.ToParams(), bars, cfg.StartBalance)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	metrics := analysis.Summarize(result.Trades, result.EquityCurve, result.StartBalance)
	log.Printf("BacktestHandler: %d trades for ticker=%s (truncated=%v, detailed=%v)",
		len(result.Trades), cfg.Ticker, result.Truncated, detailed)
	c.JSON(http.StatusOK, buildResponse(result, metrics, detailed))
}

// CompareBacktests handles POST /api/v1/backtest/compare: one bar fetch,
// several grid variations. Invalid variations are skipped rather than failing
// the whole comparison.
func (h *BacktestHandler) CompareBacktests(c *gin.Context) {
	var req models.CompareBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	base := buildGridConfig(req.Base)
	base.ApplyDefaults()
	if err := base.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	bars, err := h.fetchBars(req.Base)
	if err != nil {
		respondDataError(c, err)
		return
	}

	engine := backtest.New()
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		cfg := config.MergeGrid(base, overrideToGridConfig(variation.Config))
		if err := cfg.Validate(); err != nil {
			log.Printf("BacktestHandler: skipping variation %q: %v", variation.Name, err)
			continue
		}
		result, err := engine.Run(cfg.ToParams(), bars, cfg.StartBalance)
		if err != nil {
			log.Printf("BacktestHandler: skipping variation %q: %v", variation.Name, err)
			continue
		}
		metrics := analysis.Summarize(result.Trades, result.EquityCurve, result.StartBalance)
		comparison = append(comparison, models.ComparisonResult{
			Name:        variation.Name,
			Performance: buildPerformance(metrics, true),
			HeldShares:  result.HeldShares,
		})
	}

	c.JSON(http.StatusOK, models.CompareBacktestResponse{
		Result:     "success",
		Comparison: comparison,
	})
}

// Helper methods

// fetchBars prefers inline bars; otherwise it queries the gateway. An empty
// slice after the client's own retries is a valid zero-bar run, never an
// error here.
func (h *BacktestHandler) fetchBars(req models.BacktestRequest) ([]model.Bar, error) {
	if len(req.Bars) > 0 {
		return req.Bars, nil
	}
	return h.dataClient.FetchBars(req.Ticker, req.Timeframe, req.Interval)
}

func respondDataError(c *gin.Context, err error) {
	if mdErr, ok := err.(*data.MarketDataError); ok {
		statusCode := http.StatusBadRequest
		switch mdErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			statusCode = http.StatusUnauthorized
		case http.StatusTooManyRequests:
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    mdErr.Code,
				Message: mdErr.Message,
				Details: map[string]interface{}{
					"status_code": mdErr.StatusCode,
					"retry_after": mdErr.RetryAfter,
				},
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "DATA_FETCH_ERROR",
			Message: err.Error(),
		},
	})
}

func buildGridConfig(req models.BacktestRequest) config.GridConfig {
	return config.GridConfig{
		Ticker:        req.Ticker,
		Shares:        req.Shares,
		GridUp:        req.GridUp,
		GridDown:      req.GridDown,
		GridIncrement: req.GridIncrement,
		DecimalPlaces: req.DecimalPlaces,
		MaxTrades:     req.MaxTrades,
		StartBalance:  req.StartBalance,
	}
}

func overrideToGridConfig(o models.GridOverride) config.GridConfig {
	return config.GridConfig{
		Shares:        o.Shares,
		GridUp:        o.GridUp,
		GridDown:      o.GridDown,
		GridIncrement: o.GridIncrement,
		MaxTrades:     o.MaxTrades,
	}
}

func buildResponse(result *backtest.Result, metrics analysis.Metrics, detailed bool) models.BacktestResponse {
	trades := make([]models.Trade, len(result.Trades))
	for i, t := range result.Trades {
		trades[i] = models.Trade{
			ID:     t.ID,
			Ticker: t.Ticker,
			Shares: t.Shares,
			Price:  t.Price.InexactFloat64(),
			Side:   string(t.Side),
		}
		if detailed {
			trades[i].Timestamp = t.Timestamp
		}
	}

	resp := models.BacktestResponse{
		Result:      "success",
		Trades:      trades,
		Performance: buildPerformance(metrics, detailed),
		HeldShares:  result.HeldShares,
	}
	if detailed {
		resp.Summary = &models.BacktestSummary{
			StartBalance: result.StartBalance,
			EndBalance:   result.EndBalance,
			NumTrades:    len(result.Trades),
		}
	}
	return resp
}

func buildPerformance(m analysis.Metrics, detailed bool) models.Performance {
	p := models.Performance{
		TotalTrades: m.TotalTrades,
		PNL:         m.PNL,
		WinRate:     m.WinRate,
		Wins:        m.Wins,
		Losses:      m.Losses,
		TotalReturn: m.TotalReturn,
		MaxDrawdown: m.MaxDrawdown,
	}
	if detailed {
		p.SharpeRatio = m.SharpeRatio
	}
	return p
}
