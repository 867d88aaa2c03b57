package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// TickerList represents the symbols offered in frontend dropdowns.
type TickerList struct {
	UpdatedAt string   `json:"updated_at"` // ISO 8601 timestamp
	Tickers   []string `json:"tickers"`
}

// LoadTickers loads a ticker list from a JSON file.
func LoadTickers(filePath string) (*TickerList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tickers file: %w", err)
	}
	var list TickerList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse tickers file: %w", err)
	}
	return &list, nil
}

// GetDefaultTickersPath returns the default path for the tickers file
func GetDefaultTickersPath() string {
	if path := os.Getenv("TICKERS_FILE"); path != "" {
		return path
	}
	return "./data/tickers.json"
}

// DefaultTickers is the fallback list used when no tickers file is present.
func DefaultTickers() *TickerList {
	return &TickerList{
		Tickers: []string{"AAPL", "MSFT", "GOOG", "AMZN", "TSLA", "NVDA", "META"},
	}
}
