package backtest

import (
	"encoding/csv"
	"os"
	"strconv"

	"grid-backtest/internal/model"
)

func WriteTradesCSV(path string, trades []model.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"id",
		"ticker",
		"shares",
		"price",
		"side",
		"timestamp",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			strconv.Itoa(t.ID),
			t.Ticker,
			strconv.Itoa(t.Shares),
			t.Price.String(),
			string(t.Side),
			t.Timestamp,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
