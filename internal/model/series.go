package model

// PriceSeries holds the aligned numeric arrays the indicator engine
// operates on. Closes never contains gaps: points with a null close are
// dropped at normalization time. Highs, Lows and Volumes may be shorter
// than Closes (crypto OHLC carries no volume at all).
type PriceSeries struct {
	Closes  []float64
	Highs   []float64
	Lows    []float64
	Volumes []float64
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}
