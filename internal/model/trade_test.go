package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSideOpposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell || SideSell.Opposite() != SideBuy {
		t.Fatalf("Opposite is not an involution")
	}
}

func TestTradeDeltas(t *testing.T) {
	buy := Trade{Shares: 10, Price: decimal.RequireFromString("185.50"), Side: SideBuy}
	if got := buy.CashDelta(); !got.Equal(decimal.NewFromInt(-1855)) {
		t.Fatalf("buy cash delta = %s, want -1855", got)
	}
	if buy.ShareDelta() != 10 {
		t.Fatalf("buy share delta = %d, want 10", buy.ShareDelta())
	}

	sell := Trade{Shares: 10, Price: decimal.RequireFromString("190"), Side: SideSell}
	if got := sell.CashDelta(); !got.Equal(decimal.NewFromInt(1900)) {
		t.Fatalf("sell cash delta = %s, want 1900", got)
	}
	if sell.ShareDelta() != -10 {
		t.Fatalf("sell share delta = %d, want -10", sell.ShareDelta())
	}
}

func TestBarUpward(t *testing.T) {
	bar := Bar{Close: 100}
	if !bar.Upward(99) {
		t.Fatalf("close above prior close should be upward")
	}
	if !bar.Upward(100) {
		t.Fatalf("flat close counts as upward")
	}
	if bar.Upward(101) {
		t.Fatalf("close below prior close should not be upward")
	}
}
