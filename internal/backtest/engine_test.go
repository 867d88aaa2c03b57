package backtest

import (
	"testing"

	"grid-backtest/internal/grid"
	"grid-backtest/internal/model"

	"github.com/shopspring/decimal"
)

func gridParams() grid.Params {
	return grid.Params{
		Ticker:        "TEST",
		Shares:        10,
		Up:            decimal.NewFromInt(200),
		Down:          decimal.NewFromInt(180),
		Increment:     decimal.NewFromInt(5),
		DecimalPlaces: 2,
		MaxTrades:     1000,
	}
}

// Three up-bars, each crossing one fresh level. Every buy re-arms a sell one
// increment above, so the ladder stays flat and each crossing books a pair.
func risingBars() []model.Bar {
	return []model.Bar{
		{Date: "2025-09-12T09:30:00", Open: 184, High: 186, Low: 184, Close: 186, Volume: 1000},
		{Date: "2025-09-12T09:31:00", Open: 189, High: 191, Low: 189, Close: 191, Volume: 1000},
		{Date: "2025-09-12T09:32:00", Open: 194, High: 196, Low: 194, Close: 196, Volume: 1000},
	}
}

func TestRunRisingBars(t *testing.T) {
	result, err := New().Run(gridParams(), risingBars(), 10000)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		price string
		side  model.Side
	}{
		{"185", model.SideBuy},
		{"190", model.SideSell},
		{"195", model.SideBuy},
		{"200", model.SideSell},
	}
	if len(result.Trades) != len(want) {
		t.Fatalf("expected %d trades, got %d: %+v", len(want), len(result.Trades), result.Trades)
	}
	for i, w := range want {
		tr := result.Trades[i]
		if tr.Price.String() != w.price || tr.Side != w.side {
			t.Fatalf("trade %d = %s@%s, want %s@%s", i, tr.Side, tr.Price, w.side, w.price)
		}
		if tr.ID != i+1 {
			t.Fatalf("trade %d has id %d", i, tr.ID)
		}
	}

	if result.HeldShares != 0 {
		t.Fatalf("expected flat inventory, got %d", result.HeldShares)
	}
	if result.Truncated {
		t.Fatalf("run should not be truncated")
	}
	if len(result.EquityCurve) != 3 {
		t.Fatalf("equity curve has %d points, want one per bar", len(result.EquityCurve))
	}
	// 10000 - 1850 + 1900 - 1950 + 2000 with no held shares.
	if result.EndBalance != 10100 {
		t.Fatalf("end balance = %v, want 10100", result.EndBalance)
	}
}

func TestRunZeroBars(t *testing.T) {
	for _, bars := range [][]model.Bar{nil, {}} {
		result, err := New().Run(gridParams(), bars, 10000)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Trades) != 0 {
			t.Fatalf("zero-bar run produced trades: %+v", result.Trades)
		}
		if len(result.EquityCurve) != 0 {
			t.Fatalf("zero-bar run produced equity points")
		}
		if result.EndBalance != result.StartBalance {
			t.Fatalf("end balance %v != start balance %v", result.EndBalance, result.StartBalance)
		}
		if result.Truncated {
			t.Fatalf("zero-bar run marked truncated")
		}
	}
}

func TestRunInvalidParamsFailFast(t *testing.T) {
	p := gridParams()
	p.Shares = 0
	result, err := New().Run(p, risingBars(), 10000)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if result != nil {
		t.Fatalf("no partial result on invalid params, got %+v", result)
	}
}

func TestRunTruncatesAtMaxTrades(t *testing.T) {
	p := gridParams()
	p.MaxTrades = 1
	result, err := New().Run(p, risingBars(), 10000)
	if err != nil {
		t.Fatalf("truncation is a success, not an error: %v", err)
	}
	if len(result.Trades) != 1 {
		t.Fatalf("expected exactly 1 trade, got %d", len(result.Trades))
	}
	if !result.Truncated {
		t.Fatalf("result should be marked truncated")
	}
}

func TestRunDownBarVisitsLevelsDescending(t *testing.T) {
	bars := []model.Bar{
		// First bar crosses only the top level.
		{Date: "2025-09-12T09:30:00", Open: 199, High: 200, Low: 199, Close: 200, Volume: 1000},
		// Close fell, so the in-range levels are visited top-down.
		{Date: "2025-09-12T09:31:00", Open: 196, High: 196, Low: 184, Close: 185, Volume: 1000},
	}
	result, err := New().Run(gridParams(), bars, 10000)
	if err != nil {
		t.Fatal(err)
	}

	wantPrices := []string{"200", "195", "190", "185"}
	if len(result.Trades) != len(wantPrices) {
		t.Fatalf("expected %d trades, got %d: %+v", len(wantPrices), len(result.Trades), result.Trades)
	}
	for i, w := range wantPrices {
		if result.Trades[i].Price.String() != w {
			t.Fatalf("trade %d at %s, want %s (descending visit order)", i, result.Trades[i].Price, w)
		}
		if result.Trades[i].Side != model.SideBuy {
			t.Fatalf("trade %d is a %s; all fills here should be fresh buys", i, result.Trades[i].Side)
		}
	}
}

func TestRunSellsArePairedRearms(t *testing.T) {
	// Sweep the close up and down across the whole ladder. Every sell must sit
	// exactly one increment above some earlier buy, because sells only ever
	// arise as re-arms.
	var bars []model.Bar
	price, step := 181.0, 3.0
	for i := 0; i < 30; i++ {
		next := price + step
		if next > 199 || next < 181 {
			step = -step
			next = price + step
		}
		low, high := price, next
		if low > high {
			low, high = high, low
		}
		bars = append(bars, model.Bar{
			Date: "2025-09-12T09:30:00",
			Open: price, High: high, Low: low, Close: next, Volume: 100,
		})
		price = next
	}

	result, err := New().Run(gridParams(), bars, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Trades) == 0 {
		t.Fatalf("sweep produced no trades")
	}

	increment := decimal.NewFromInt(5)
	for i, tr := range result.Trades {
		if tr.Side != model.SideSell {
			continue
		}
		wantBuy := tr.Price.Sub(increment)
		found := false
		for _, prev := range result.Trades[:i] {
			if prev.Side == model.SideBuy && prev.Price.Equal(wantBuy) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("sell at %s has no earlier buy at %s", tr.Price, wantBuy)
		}
	}
}

func TestRunEquityTracksHeldShares(t *testing.T) {
	// Single bar crossing only 200: the buy's re-arm would land above the
	// ladder, so the run ends holding 10 shares.
	bars := []model.Bar{
		{Date: "2025-09-12T09:30:00", Open: 199, High: 200, Low: 199, Close: 201, Volume: 1000},
	}
	result, err := New().Run(gridParams(), bars, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if result.HeldShares != 10 {
		t.Fatalf("expected 10 held shares, got %d", result.HeldShares)
	}
	// cash 10000 - 2000, plus 10 shares marked at the close of 201.
	want := 8000 + 10*201.0
	if result.EndBalance != want {
		t.Fatalf("end balance = %v, want %v", result.EndBalance, want)
	}
}
