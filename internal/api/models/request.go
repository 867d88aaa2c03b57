package models

import "grid-backtest/internal/model"

// BacktestRequest represents the request body for running a grid backtest.
// Field names mirror the frontend contract exactly.
type BacktestRequest struct {
	Ticker        string  `json:"ticker" binding:"required"`
	Shares        int     `json:"shares" binding:"required"`
	GridUp        float64 `json:"grid_up" binding:"required"`
	GridDown      float64 `json:"grid_down"`
	GridIncrement float64 `json:"grid_increment" binding:"required"`
	Timeframe     string  `json:"timeframe" binding:"required"` // forwarded to the data source, e.g. "1 D"
	Interval      string  `json:"interval" binding:"required"`  // forwarded to the data source, e.g. "1 min"
	MaxTrades     int     `json:"max_trades,omitempty"`         // default: 1000
	DecimalPlaces int     `json:"decimal_places,omitempty"`     // default: 2
	StartBalance  float64 `json:"start_balance,omitempty"`      // default: 10000

	// Bars, when present, is replayed directly instead of querying the
	// market data gateway.
	Bars []model.Bar `json:"bars,omitempty"`
}

// GridOverride carries the fields a comparison variation may change.
type GridOverride struct {
	Shares        int     `json:"shares,omitempty"`
	GridUp        float64 `json:"grid_up,omitempty"`
	GridDown      float64 `json:"grid_down,omitempty"`
	GridIncrement float64 `json:"grid_increment,omitempty"`
	MaxTrades     int     `json:"max_trades,omitempty"`
}

// BacktestVariation defines one variation to compare
type BacktestVariation struct {
	Name   string       `json:"name" binding:"required"`
	Config GridOverride `json:"config" binding:"required"`
}

// CompareBacktestRequest runs several grid variations over a single bar fetch.
type CompareBacktestRequest struct {
	Base       BacktestRequest     `json:"base_config" binding:"required"`
	Variations []BacktestVariation `json:"variations" binding:"required"`
}

// ChartRequest represents the request body for the minute chart endpoint.
type ChartRequest struct {
	Ticker    string `json:"ticker" binding:"required"`
	Duration  string `json:"duration" binding:"required"`
	BarSize   string `json:"bar_size" binding:"required"`
	Frequency string `json:"frequency,omitempty"`
}
