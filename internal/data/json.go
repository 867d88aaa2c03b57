package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"grid-backtest/internal/model"
)

// LoadBarsJSON reads a bars file written by cmd/fetch-bars (or assembled by
// hand) for offline backtests.
func LoadBarsJSON(path string) (*model.HistoricalBarsResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resp model.HistoricalBarsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse bars file: %w", err)
	}
	return &resp, nil
}

// SaveBarsJSON writes a bars file for later offline use.
func SaveBarsJSON(path string, resp *model.HistoricalBarsResponse) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bars: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write bars file: %w", err)
	}
	return nil
}
