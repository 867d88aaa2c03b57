package models

import "grid-backtest/internal/model"

// BacktestResponse represents the response from a backtest run.
// `result` is "success" even for zero-bar and truncated runs; those cases are
// distinguishable via performance.total_trades and the trade-list length.
type BacktestResponse struct {
	Result      string           `json:"result"`
	Trades      []Trade          `json:"trades"`
	Performance Performance      `json:"performance"`
	HeldShares  int              `json:"heldShares"`
	Summary     *BacktestSummary `json:"summary,omitempty"`
}

// Trade is one executed fill in a response. Timestamp is populated in
// detailed mode only.
type Trade struct {
	ID        int     `json:"id"`
	Ticker    string  `json:"ticker"`
	Shares    int     `json:"shares"`
	Price     float64 `json:"price"`
	Side      string  `json:"side"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// Performance contains aggregated backtest metrics.
// sharpe_ratio is present in detailed mode only, and omitted entirely when
// undefined (fewer than 2 equity points or zero variance).
type Performance struct {
	TotalTrades int      `json:"total_trades"`
	PNL         float64  `json:"pnl"`
	WinRate     float64  `json:"win_rate"`
	Wins        int      `json:"wins"`
	Losses      int      `json:"losses"`
	TotalReturn float64  `json:"total_return"`
	MaxDrawdown float64  `json:"max_drawdown"`
	SharpeRatio *float64 `json:"sharpe_ratio,omitempty"`
}

// BacktestSummary contains balance statistics, detailed mode only.
type BacktestSummary struct {
	StartBalance float64 `json:"start_balance"`
	EndBalance   float64 `json:"end_balance"`
	NumTrades    int     `json:"num_trades"`
}

// CompareBacktestResponse represents the response from a comparison
type CompareBacktestResponse struct {
	Result     string             `json:"result"`
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name        string      `json:"name"`
	Performance Performance `json:"performance"`
	HeldShares  int         `json:"heldShares"`
}

// ChartResponse represents minute chart data
type ChartResponse struct {
	Result string      `json:"result"`
	Chart  []model.Bar `json:"chart"`
}

// HistoricalResponse represents historical bar data
type HistoricalResponse struct {
	Result string      `json:"result"`
	Bars   []model.Bar `json:"bars"`
}

// TickerListResponse represents the ticker dropdown list
type TickerListResponse struct {
	Result  string   `json:"result"`
	Tickers []string `json:"tickers"`
}

// Tick is a single realtime price observation
type Tick struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// RealtimeResponse represents recent tick data
type RealtimeResponse struct {
	Result string `json:"result"`
	Symbol string `json:"symbol"`
	Ticks  []Tick `json:"ticks"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
