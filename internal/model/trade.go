package model

import "github.com/shopspring/decimal"

// Side is the direction of a fill.
// Keep these values stable; they appear verbatim in API responses and CSV output.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Opposite returns the side a fill re-arms.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Trade is one executed fill. Trades are append-only and IDs are assigned
// sequentially within a single simulation run, starting at 1.
type Trade struct {
	ID        int
	Ticker    string
	Shares    int
	Price     decimal.Decimal
	Side      Side
	Timestamp string
}

// CashDelta is the signed effect of the trade on cash: buys spend, sells earn.
func (t Trade) CashDelta() decimal.Decimal {
	notional := t.Price.Mul(decimal.NewFromInt(int64(t.Shares)))
	if t.Side == SideBuy {
		return notional.Neg()
	}
	return notional
}

// ShareDelta is the signed effect of the trade on net inventory.
func (t Trade) ShareDelta() int {
	if t.Side == SideBuy {
		return t.Shares
	}
	return -t.Shares
}
