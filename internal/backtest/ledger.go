package backtest

import (
	"grid-backtest/internal/grid"
	"grid-backtest/internal/model"
)

// Result is the terminal output of one simulation run.
// This is the primary artifact for "what happened" in a backtest; performance
// metrics are derived from it separately so that basic and detailed response
// modes come from a single run.
type Result struct {
	Trades     []model.Trade
	Positions  map[string]grid.Position
	HeldShares int

	// EquityCurve holds one point per processed bar: cash + heldShares*close.
	// Bars skipped after a max-trades halt contribute no points.
	EquityCurve []float64

	StartBalance float64
	EndBalance   float64

	// Truncated is set when the run halted early at the trade cap.
	// Truncation is not a failure.
	Truncated bool
}
