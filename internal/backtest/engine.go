package backtest

import (
	"grid-backtest/internal/grid"
	"grid-backtest/internal/model"

	"github.com/shopspring/decimal"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run replays an ordered bar sequence through a freshly constructed ladder.
//
// Per bar, every lattice level inside [low, high] is visited — ascending when
// the bar closed at or above the prior close, descending otherwise (first bar
// ascending). An empty, in-bounds, under-cap level seeds a buy; each buy fill
// immediately drives the opposite-side order through the ladder's work queue,
// so a single crossing can produce a chain of fills. Sells only ever arise as
// re-arms of buys.
//
// The run halts early once MaxTrades fills have been recorded; remaining bars
// are skipped and the result is still a success (Truncated is set).
//
// Invalid params fail fast before any bar is processed; no partial ledger is
// produced. A nil or empty bar slice is not an error: the run completes over
// zero bars with an empty ledger.
func (e *Engine) Run(params grid.Params, bars []model.Bar, startBalance float64) (*Result, error) {
	ladder, err := grid.NewLadder(params)
	if err != nil {
		return nil, err
	}

	cash := decimal.NewFromFloat(startBalance)
	equity := make([]float64, 0, len(bars))
	prevClose := 0.0
	truncated := false

	for i, bar := range bars {
		if ladder.Full() {
			truncated = true
			break
		}

		levels := ladder.Levels(decimal.NewFromFloat(bar.Low), decimal.NewFromFloat(bar.High))
		if i > 0 && !bar.Upward(prevClose) {
			reverse(levels)
		}

		for _, lvl := range levels {
			if ladder.Full() {
				break
			}
			for _, t := range ladder.PlaceOrder(lvl, model.SideBuy, bar.Date) {
				cash = cash.Add(t.CashDelta())
			}
		}

		equity = append(equity, cash.InexactFloat64()+float64(ladder.HeldShares())*bar.Close)
		prevClose = bar.Close
	}
	if ladder.Full() {
		truncated = true
	}

	endBalance := startBalance
	if len(equity) > 0 {
		endBalance = equity[len(equity)-1]
	}

	return &Result{
		Trades:       ladder.Trades(),
		Positions:    ladder.Positions(),
		HeldShares:   ladder.HeldShares(),
		EquityCurve:  equity,
		StartBalance: startBalance,
		EndBalance:   endBalance,
		Truncated:    truncated,
	}, nil
}

func reverse(levels []decimal.Decimal) {
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
}
