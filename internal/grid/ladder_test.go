package grid

import (
	"testing"

	"grid-backtest/internal/model"

	"github.com/shopspring/decimal"
)

func testParams() Params {
	return Params{
		Ticker:        "TEST",
		Shares:        10,
		Up:            decimal.NewFromInt(200),
		Down:          decimal.NewFromInt(180),
		Increment:     decimal.NewFromInt(5),
		DecimalPlaces: 2,
		MaxTrades:     1000,
	}
}

func TestNewLadderValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero shares", func(p *Params) { p.Shares = 0 }},
		{"negative shares", func(p *Params) { p.Shares = -5 }},
		{"zero increment", func(p *Params) { p.Increment = decimal.Zero }},
		{"negative increment", func(p *Params) { p.Increment = decimal.NewFromInt(-1) }},
		{"inverted bounds", func(p *Params) { p.Down = decimal.NewFromInt(300) }},
		{"precision out of range", func(p *Params) { p.DecimalPlaces = 9 }},
		{"increment below precision", func(p *Params) {
			p.Increment = decimal.RequireFromString("0.001")
			p.DecimalPlaces = 2
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testParams()
			tc.mutate(&p)
			if _, err := NewLadder(p); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	if _, err := NewLadder(testParams()); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
}

func TestRoundTruncatesAndIsIdempotent(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		in   string
		want string
	}{
		{"185.999", "185.99"},
		{"185.991", "185.99"},
		{"185.00", "185"},
		{"0.129", "0.12"},
	}
	for _, tc := range cases {
		got := l.Round(decimal.RequireFromString(tc.in))
		if got.String() != tc.want {
			t.Fatalf("Round(%s) = %s, want %s", tc.in, got, tc.want)
		}
		if again := l.Round(got); !again.Equal(got) {
			t.Fatalf("Round not idempotent: Round(%s) = %s", got, again)
		}
	}
}

func TestPlaceOrderFillsAndRearms(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}

	fills := l.PlaceOrder(decimal.NewFromInt(185), model.SideBuy, "t0")
	if len(fills) != 2 {
		t.Fatalf("expected buy + re-armed sell, got %d fills", len(fills))
	}
	if fills[0].Side != model.SideBuy || fills[0].Price.String() != "185" {
		t.Fatalf("unexpected first fill: %+v", fills[0])
	}
	if fills[1].Side != model.SideSell || fills[1].Price.String() != "190" {
		t.Fatalf("expected re-armed sell at 190, got %+v", fills[1])
	}
	if fills[0].ID != 1 || fills[1].ID != 2 {
		t.Fatalf("ids must be sequential from 1, got %d/%d", fills[0].ID, fills[1].ID)
	}
}

func TestPlaceOrderCapBlocksSecondFill(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}

	l.PlaceOrder(decimal.NewFromInt(185), model.SideBuy, "t0")
	n := len(l.Trades())
	if fills := l.PlaceOrder(decimal.NewFromInt(185), model.SideBuy, "t1"); len(fills) != 0 {
		t.Fatalf("capped level accepted a second fill: %+v", fills)
	}
	if len(l.Trades()) != n {
		t.Fatalf("ledger grew on a capped level")
	}
}

func TestCapInvariant(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}

	prices := []string{"185", "185.004", "190", "195", "185", "190", "200", "180"}
	for i, s := range prices {
		side := model.SideBuy
		if i%2 == 1 {
			side = model.SideSell
		}
		l.PlaceOrder(decimal.RequireFromString(s), side, "t")
	}
	for key, pos := range l.Positions() {
		if pos.Shares > 10 {
			t.Fatalf("level %s holds %d shares, cap is 10", key, pos.Shares)
		}
	}
}

func TestRearmStaysInsideBounds(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}

	// Buy at the top level: its re-armed sell would land at 205, above the
	// ladder. It must be silently skipped.
	fills := l.PlaceOrder(decimal.NewFromInt(200), model.SideBuy, "t0")
	if len(fills) != 1 {
		t.Fatalf("expected exactly the buy fill, got %d", len(fills))
	}
	// Sell at the bottom level symmetric case.
	fills = l.PlaceOrder(decimal.NewFromInt(180), model.SideSell, "t1")
	if len(fills) != 1 {
		t.Fatalf("expected exactly the sell fill, got %d", len(fills))
	}

	down := decimal.NewFromInt(180)
	up := decimal.NewFromInt(200)
	for _, tr := range l.Trades() {
		if tr.Price.LessThan(down) || tr.Price.GreaterThan(up) {
			t.Fatalf("trade outside grid bounds: %+v", tr)
		}
	}
}

func TestPlaceOrderOutsideBoundsIsNoop(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}
	if fills := l.PlaceOrder(decimal.NewFromInt(205), model.SideBuy, "t0"); len(fills) != 0 {
		t.Fatalf("out-of-bounds order filled: %+v", fills)
	}
	if fills := l.PlaceOrder(decimal.NewFromInt(179), model.SideBuy, "t0"); len(fills) != 0 {
		t.Fatalf("out-of-bounds order filled: %+v", fills)
	}
}

func TestMaxTradesStopsQueue(t *testing.T) {
	p := testParams()
	p.MaxTrades = 1
	l, err := NewLadder(p)
	if err != nil {
		t.Fatal(err)
	}

	fills := l.PlaceOrder(decimal.NewFromInt(185), model.SideBuy, "t0")
	if len(fills) != 1 {
		t.Fatalf("expected the queue to stop at max_trades=1, got %d fills", len(fills))
	}
	if !l.Full() {
		t.Fatalf("ladder should report full")
	}
	if fills := l.PlaceOrder(decimal.NewFromInt(195), model.SideBuy, "t1"); len(fills) != 0 {
		t.Fatalf("full ladder accepted an order")
	}
}

func TestHeldShares(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}
	// 185 buy re-arms a 190 sell: net zero.
	l.PlaceOrder(decimal.NewFromInt(185), model.SideBuy, "t0")
	if held := l.HeldShares(); held != 0 {
		t.Fatalf("expected flat inventory, got %d", held)
	}
	// A buy at the top has no in-bounds re-arm: net +10.
	l.PlaceOrder(decimal.NewFromInt(200), model.SideBuy, "t1")
	if held := l.HeldShares(); held != 10 {
		t.Fatalf("expected 10 held shares, got %d", held)
	}
}

func TestLevels(t *testing.T) {
	l, err := NewLadder(testParams())
	if err != nil {
		t.Fatal(err)
	}
	got := l.Levels(decimal.NewFromInt(184), decimal.NewFromInt(196))
	want := []string{"185", "190", "195"}
	if len(got) != len(want) {
		t.Fatalf("Levels returned %d levels, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Fatalf("level %d = %s, want %s", i, got[i], w)
		}
	}
}
