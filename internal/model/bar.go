package model

// HistoricalBarsResponse matches the JSON shape returned by the market data
// bridge and written by cmd/fetch-bars.
//
// Example:
// {
//   "symbol": "AAPL",
//   "bars": [ ... ]
// }
type HistoricalBarsResponse struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// Bar is one OHLCV record from the market data source.
// Date strings are passed through as delivered by the source (RFC3339 or
// the broker's "yyyymmdd hh:mm:ss" format); the simulation treats them as
// opaque timestamps and only relies on the ordering of the slice.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Direction reports whether the bar closed at or above the given reference
// price. Used to decide level visit order within a bar.
func (b Bar) Upward(prevClose float64) bool {
	return b.Close >= prevClose
}
