package grid

import (
	"errors"
	"fmt"

	"grid-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// Params defines the ladder geometry and sizing.
// Units:
// - Up/Down: absolute price bounds of the ladder
// - Increment: price step between adjacent levels, > 0
// - Shares: order size per level, > 0
// - DecimalPlaces: price precision; rounding is always toward zero
// - MaxTrades: hard cap on recorded fills; 0 means unlimited
type Params struct {
	Ticker        string
	Shares        int
	Up            decimal.Decimal
	Down          decimal.Decimal
	Increment     decimal.Decimal
	DecimalPlaces int32
	MaxTrades     int
}

// Position is the occupancy state of one grid level.
type Position struct {
	Side   model.Side
	Shares int
}

// Ladder is the order-ladder state machine for a single simulation run.
// It owns the level map and the trade ledger. Levels are created lazily on
// first fill and never deleted during a run; a level that has reached its
// share cap blocks further fills at that price regardless of side.
//
// A Ladder is not safe for concurrent use; each run constructs its own.
type Ladder struct {
	params    Params
	positions map[string]*Position
	trades    []model.Trade
}

type pendingOrder struct {
	price decimal.Decimal
	side  model.Side
}

// NewLadder validates params and constructs an empty ladder.
// Bounds and increment are quantized to DecimalPlaces so that every computed
// level lands on an exact lattice point without drift.
func NewLadder(p Params) (*Ladder, error) {
	if p.Shares <= 0 {
		return nil, errors.New("shares must be > 0")
	}
	if !p.Increment.IsPositive() {
		return nil, errors.New("grid_increment must be > 0")
	}
	if p.Down.GreaterThan(p.Up) {
		return nil, errors.New("grid_down must be <= grid_up")
	}
	if p.DecimalPlaces < 0 || p.DecimalPlaces > 8 {
		return nil, fmt.Errorf("decimal_places must be in [0, 8], got %d", p.DecimalPlaces)
	}
	p.Up = p.Up.RoundDown(p.DecimalPlaces)
	p.Down = p.Down.RoundDown(p.DecimalPlaces)
	p.Increment = p.Increment.RoundDown(p.DecimalPlaces)
	if !p.Increment.IsPositive() {
		return nil, errors.New("grid_increment rounds to zero at the configured precision")
	}
	return &Ladder{
		params:    p,
		positions: make(map[string]*Position),
	}, nil
}

// Round quantizes a price to the ladder's precision, truncating toward zero.
func (l *Ladder) Round(price decimal.Decimal) decimal.Decimal {
	return price.RoundDown(l.params.DecimalPlaces)
}

// Full reports whether the trade cap has been reached.
func (l *Ladder) Full() bool {
	return l.params.MaxTrades > 0 && len(l.trades) >= l.params.MaxTrades
}

// PlaceOrder attempts a fill at the rounded price and drains any re-armed
// follow-up orders. Each successful fill enqueues at most one opposite-side
// order one increment away; the queue runs until it is empty, an order lands
// on a capped or out-of-bounds level, or MaxTrades is reached. Orders outside
// [Down, Up] are silently skipped.
//
// Returns the fills executed by this call, in execution order. An empty slice
// means the level was capped, out of bounds, or the cap was already reached.
func (l *Ladder) PlaceOrder(price decimal.Decimal, side model.Side, timestamp string) []model.Trade {
	queue := []pendingOrder{{price: price, side: side}}
	var fills []model.Trade

	for len(queue) > 0 {
		if l.Full() {
			break
		}
		o := queue[0]
		queue = queue[1:]

		gp := l.Round(o.price)
		if gp.LessThan(l.params.Down) || gp.GreaterThan(l.params.Up) {
			continue
		}
		key := gp.StringFixed(l.params.DecimalPlaces)
		if pos, ok := l.positions[key]; ok && pos.Shares >= l.params.Shares {
			continue
		}

		l.positions[key] = &Position{Side: o.side, Shares: l.params.Shares}
		t := model.Trade{
			ID:        len(l.trades) + 1,
			Ticker:    l.params.Ticker,
			Shares:    l.params.Shares,
			Price:     gp,
			Side:      o.side,
			Timestamp: timestamp,
		}
		l.trades = append(l.trades, t)
		fills = append(fills, t)

		// Re-arm the opposite side one step away.
		next := gp.Add(l.params.Increment)
		if o.side == model.SideSell {
			next = gp.Sub(l.params.Increment)
		}
		queue = append(queue, pendingOrder{price: next, side: o.side.Opposite()})
	}
	return fills
}

// Trades returns the append-only ledger. Callers must not modify it.
func (l *Ladder) Trades() []model.Trade {
	return l.trades
}

// Positions returns a snapshot of the level map keyed by exact fixed-decimal
// price strings.
func (l *Ladder) Positions() map[string]Position {
	out := make(map[string]Position, len(l.positions))
	for k, v := range l.positions {
		out[k] = *v
	}
	return out
}

// HeldShares is the signed net inventory implied by the ledger:
// buys increase, sells decrease.
func (l *Ladder) HeldShares() int {
	held := 0
	for _, t := range l.trades {
		held += t.ShareDelta()
	}
	return held
}

// Levels returns every lattice price in [Down, Up] whose value falls within
// [low, high], in ascending order. The lattice is anchored at Down and steps
// by Increment.
func (l *Ladder) Levels(low, high decimal.Decimal) []decimal.Decimal {
	var out []decimal.Decimal
	for p := l.params.Down; !p.GreaterThan(l.params.Up); p = p.Add(l.params.Increment) {
		if p.LessThan(low) || p.GreaterThan(high) {
			continue
		}
		out = append(out, p)
	}
	return out
}
