package config

import (
	"errors"
	"fmt"
	"os"

	"grid-backtest/internal/grid"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML), used by cmd/cli and
// cmd/demo. The API builds a GridConfig directly from request bodies.
type Config struct {
	Grid GridConfig `yaml:"grid"`
	Data DataConfig `yaml:"data"`
}

// GridConfig carries the ladder parameters as they arrive from YAML or JSON.
// Prices are plain numbers here; they are quantized to exact decimals when
// converted to grid.Params.
type GridConfig struct {
	Ticker        string  `yaml:"ticker"`
	Shares        int     `yaml:"shares"`
	GridUp        float64 `yaml:"grid_up"`
	GridDown      float64 `yaml:"grid_down"`
	GridIncrement float64 `yaml:"grid_increment"`
	DecimalPlaces int     `yaml:"decimal_places"`
	MaxTrades     int     `yaml:"max_trades"`
	StartBalance  float64 `yaml:"start_balance"`
}

// DataConfig points the CLI at a bar source: either a local JSON file or the
// market data bridge. Timeframe and interval are opaque strings forwarded to
// the source.
type DataConfig struct {
	BarsFile  string `yaml:"bars_file"`
	Timeframe string `yaml:"timeframe"`
	Interval  string `yaml:"interval"`
}

const (
	DefaultMaxTrades     = 1000
	DefaultDecimalPlaces = 2
	DefaultStartBalance  = 10000
)

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.Grid.ApplyDefaults()
	if err := c.Grid.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyDefaults fills unset optional fields. A zero decimal_places is treated
// as unset and defaults to 2 (sub-dollar tickers price in cents).
func (g *GridConfig) ApplyDefaults() {
	if g.MaxTrades == 0 {
		g.MaxTrades = DefaultMaxTrades
	}
	if g.DecimalPlaces == 0 {
		g.DecimalPlaces = DefaultDecimalPlaces
	}
	if g.StartBalance == 0 {
		g.StartBalance = DefaultStartBalance
	}
}

// Validate fails fast on configurations the simulation must never start with.
func (g *GridConfig) Validate() error {
	if g.Ticker == "" {
		return errors.New("ticker is required")
	}
	if g.Shares <= 0 {
		return errors.New("shares must be > 0")
	}
	if g.GridIncrement <= 0 {
		return errors.New("grid_increment must be > 0")
	}
	if g.GridDown > g.GridUp {
		return errors.New("grid_down must be <= grid_up")
	}
	if g.DecimalPlaces < 0 || g.DecimalPlaces > 8 {
		return fmt.Errorf("decimal_places must be in [0, 8], got %d", g.DecimalPlaces)
	}
	return nil
}

// ToParams quantizes the float-typed bounds to exact decimals for the ladder.
func (g GridConfig) ToParams() grid.Params {
	return grid.Params{
		Ticker:        g.Ticker,
		Shares:        g.Shares,
		Up:            decimal.NewFromFloat(g.GridUp),
		Down:          decimal.NewFromFloat(g.GridDown),
		Increment:     decimal.NewFromFloat(g.GridIncrement),
		DecimalPlaces: int32(g.DecimalPlaces),
		MaxTrades:     g.MaxTrades,
	}
}

// MergeGrid overlays non-zero fields from override onto base.
// Used by the compare endpoint to derive variation configs from a base grid.
func MergeGrid(base, override GridConfig) GridConfig {
	out := base
	if override.Ticker != "" {
		out.Ticker = override.Ticker
	}
	if override.Shares != 0 {
		out.Shares = override.Shares
	}
	if override.GridUp != 0 {
		out.GridUp = override.GridUp
	}
	if override.GridDown != 0 {
		out.GridDown = override.GridDown
	}
	if override.GridIncrement != 0 {
		out.GridIncrement = override.GridIncrement
	}
	if override.DecimalPlaces != 0 {
		out.DecimalPlaces = override.DecimalPlaces
	}
	if override.MaxTrades != 0 {
		out.MaxTrades = override.MaxTrades
	}
	if override.StartBalance != 0 {
		out.StartBalance = override.StartBalance
	}
	return out
}
