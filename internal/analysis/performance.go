package analysis

import (
	"math"

	"grid-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// Metrics is the read-only summary derived from a final trade ledger and
// equity curve. Computed once per run; never mutated afterwards.
type Metrics struct {
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64
	PNL         float64 // closed round-trip P&L, rounded to 2 decimal places
	TotalReturn float64
	MaxDrawdown float64 // largest peak-to-trough decline, as a fraction of the peak

	// SharpeRatio is nil when the equity curve has fewer than 2 points or
	// zero return variance.
	SharpeRatio *float64
}

// Summarize reduces a trade ledger and an equity curve into Metrics.
//
// Round trips are formed by FIFO matching: each sell is paired with the
// earliest still-open buy at a lower price, falling back to the earliest open
// buy of any price (such a pairing is a loss by construction). Sells with no
// open buy are left unmatched and contribute nothing to wins, losses, or P&L.
func Summarize(trades []model.Trade, equity []float64, startBalance float64) Metrics {
	m := Metrics{TotalTrades: len(trades)}

	pnl := decimal.Zero
	var openBuys []model.Trade
	for _, t := range trades {
		switch t.Side {
		case model.SideBuy:
			openBuys = append(openBuys, t)
		case model.SideSell:
			i := matchBuy(openBuys, t.Price)
			if i < 0 {
				continue
			}
			buy := openBuys[i]
			openBuys = append(openBuys[:i], openBuys[i+1:]...)

			shares := minInt(buy.Shares, t.Shares)
			pnl = pnl.Add(t.Price.Sub(buy.Price).Mul(decimal.NewFromInt(int64(shares))))
			if t.Price.GreaterThan(buy.Price) {
				m.Wins++
			} else {
				m.Losses++
			}
		}
	}
	m.PNL = pnl.Round(2).InexactFloat64()
	m.WinRate = float64(m.Wins) / math.Max(float64(m.Wins+m.Losses), 1)

	if len(equity) > 0 && startBalance != 0 {
		m.TotalReturn = (equity[len(equity)-1] - startBalance) / startBalance
	}
	m.MaxDrawdown = maxDrawdown(equity)
	m.SharpeRatio = sharpeRatio(equity)

	return m
}

// matchBuy returns the index of the earliest open buy below price, or the
// earliest open buy at all if none is lower. -1 when no buys are open.
func matchBuy(openBuys []model.Trade, price decimal.Decimal) int {
	if len(openBuys) == 0 {
		return -1
	}
	for i, b := range openBuys {
		if b.Price.LessThan(price) {
			return i
		}
	}
	return 0
}

// maxDrawdown is the largest peak-to-trough decline over the equity curve,
// expressed as a fraction of the peak.
func maxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}

// sharpeRatio is the mean of per-bar equity returns over their standard
// deviation, scaled by the square root of the number of periods. Undefined
// (nil) for curves with fewer than 2 points or zero variance.
func sharpeRatio(equity []float64) *float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			return nil
		}
		returns = append(returns, (equity[i]-equity[i-1])/equity[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	if variance == 0 {
		return nil
	}

	s := mean / math.Sqrt(variance) * math.Sqrt(float64(len(returns)))
	return &s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
