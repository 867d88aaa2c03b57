package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"grid-backtest/internal/data"
	"grid-backtest/internal/model"
)

// fetch-bars pulls historical bars from the market data gateway and writes
// them to a JSON file for offline backtests (cmd/cli -bars, demo fixtures).
func main() {
	symbol := flag.String("symbol", "", "Symbol to fetch (required)")
	duration := flag.String("duration", "1 D", "Lookback duration forwarded to the gateway")
	barSize := flag.String("bar", "1 min", "Bar size forwarded to the gateway")
	out := flag.String("out", "", "Output path (default data/bars_<symbol>.json)")
	baseURL := flag.String("url", os.Getenv("MARKETDATA_URL"), "Gateway base URL")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: fetch-bars -symbol AAPL [-duration \"1 D\"] [-bar \"1 min\"] [-out path]")
		os.Exit(2)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("data/bars_%s.json", *symbol)
	}

	client := data.NewHistoricalClient(*baseURL)
	bars, err := client.FetchBars(*symbol, *duration, *barSize)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	if len(bars) == 0 {
		log.Fatalf("no bars received for %s; nothing written", *symbol)
	}

	resp := &model.HistoricalBarsResponse{Symbol: *symbol, Bars: bars}
	if err := data.SaveBarsJSON(path, resp); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("Wrote %d bars for %s to %s", len(bars), *symbol, path)
}
