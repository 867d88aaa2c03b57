package main

import (
	"flag"
	"fmt"
	"os"

	"grid-backtest/internal/analysis"
	"grid-backtest/internal/backtest"
	"grid-backtest/internal/config"
	"grid-backtest/internal/data"
	"grid-backtest/internal/model"
)

// CLI:
// - Load a grid config from YAML
// - Load bars from a local JSON file (see cmd/fetch-bars) or fetch them live
// - Run the simulation, print a summary, optionally write the trades CSV
func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to YAML config")
	barsPath := flag.String("bars", "", "Path to bars JSON (overrides config data.bars_file)")
	outCSV := flag.String("out", "", "Optional path to write trades CSV (e.g. results/trades.csv)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Data.BarsFile
	if *barsPath != "" {
		path = *barsPath
	}

	var bars []model.Bar
	if path != "" {
		resp, err := data.LoadBarsJSON(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load bars: %v\n", err)
			os.Exit(1)
		}
		bars = resp.Bars
	} else {
		client := data.NewHistoricalClient(os.Getenv("MARKETDATA_URL"))
		bars, err = client.FetchBars(cfg.Grid.Ticker, cfg.Data.Timeframe, cfg.Data.Interval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch bars: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := backtest.New().Run(cfg.Grid.ToParams(), bars, cfg.Grid.StartBalance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backtest: %v\n", err)
		os.Exit(1)
	}

	metrics := analysis.Summarize(result.Trades, result.EquityCurve, result.StartBalance)

	fmt.Printf("Ticker:        %s\n", cfg.Grid.Ticker)
	fmt.Printf("Bars:          %d\n", len(result.EquityCurve))
	fmt.Printf("Trades:        %d", metrics.TotalTrades)
	if result.Truncated {
		fmt.Printf(" (truncated at max_trades=%d)", cfg.Grid.MaxTrades)
	}
	fmt.Println()
	fmt.Printf("Wins/Losses:   %d/%d (win rate %.2f)\n", metrics.Wins, metrics.Losses, metrics.WinRate)
	fmt.Printf("PnL:           %.2f\n", metrics.PNL)
	fmt.Printf("Held shares:   %d\n", result.HeldShares)
	fmt.Printf("Balance:       %.2f -> %.2f (return %.4f)\n",
		result.StartBalance, result.EndBalance, metrics.TotalReturn)
	fmt.Printf("Max drawdown:  %.4f\n", metrics.MaxDrawdown)
	if metrics.SharpeRatio != nil {
		fmt.Printf("Sharpe ratio:  %.4f\n", *metrics.SharpeRatio)
	}

	if *outCSV != "" {
		if err := backtest.WriteTradesCSV(*outCSV, result.Trades); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote trades CSV to %s\n", *outCSV)
	}
}
