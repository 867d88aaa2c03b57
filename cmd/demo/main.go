package main

import (
	"flag"
	"fmt"

	"grid-backtest/internal/analysis"
	"grid-backtest/internal/backtest"
	"grid-backtest/internal/config"
	"grid-backtest/internal/model"
)

// Demo:
// - Build a synthetic zig-zag bar series around a grid
// - Run the full pipeline (ladder -> driver -> metrics)
// - Print the resulting trades and summary to show how the pieces fit together
func main() {
	n := flag.Int("n", 40, "Number of bars to simulate")
	outCSV := flag.String("out", "", "Optional path to write trades CSV")
	flag.Parse()

	cfg := config.GridConfig{
		Ticker:        "DEMO",
		Shares:        10,
		GridUp:        200,
		GridDown:      180,
		GridIncrement: 5,
	}
	cfg.ApplyDefaults()

	bars := zigzag(*n, 182, 198)

	result, err := backtest.New().Run(cfg.ToParams(), bars, cfg.StartBalance)
	if err != nil {
		panic(err)
	}
	metrics := analysis.Summarize(result.Trades, result.EquityCurve, result.StartBalance)

	for _, t := range result.Trades {
		fmt.Printf("#%-3d %-4s %3d @ %s  (%s)\n", t.ID, t.Side, t.Shares, t.Price.StringFixed(2), t.Timestamp)
	}
	fmt.Printf("\ntrades=%d wins=%d losses=%d win_rate=%.2f pnl=%.2f held=%d drawdown=%.4f\n",
		metrics.TotalTrades, metrics.Wins, metrics.Losses, metrics.WinRate,
		metrics.PNL, result.HeldShares, metrics.MaxDrawdown)

	if *outCSV != "" {
		if err := backtest.WriteTradesCSV(*outCSV, result.Trades); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote trades CSV to %s\n", *outCSV)
	}
}

// zigzag sweeps the close back and forth between lo and hi, one price step
// per bar, so every grid level gets crossed repeatedly.
func zigzag(n int, lo, hi float64) []model.Bar {
	bars := make([]model.Bar, 0, n)
	price := lo
	step := 2.0
	for i := 0; i < n; i++ {
		next := price + step
		if next > hi || next < lo {
			step = -step
			next = price + step
		}
		low, high := price, next
		if low > high {
			low, high = high, low
		}
		bars = append(bars, model.Bar{
			Date:   fmt.Sprintf("2025-09-12T09:%02d:00", 30+i%30),
			Open:   price,
			High:   high,
			Low:    low,
			Close:  next,
			Volume: 10000,
		})
		price = next
	}
	return bars
}
