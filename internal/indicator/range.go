package indicator

import "math"

// SupportResistance returns the min of the trailing 20 lows and the max
// of the trailing 20 highs. Empty inputs yield zero levels.
func SupportResistance(highs, lows []float64) (support, resistance float64) {
	if len(highs) == 0 || len(lows) == 0 {
		return 0, 0
	}
	support = math.Inf(1)
	resistance = math.Inf(-1)
	start := len(lows) - 20
	if start < 0 {
		start = 0
	}
	for _, l := range lows[start:] {
		if l < support {
			support = l
		}
	}
	start = len(highs) - 20
	if start < 0 {
		start = 0
	}
	for _, h := range highs[start:] {
		if h > resistance {
			resistance = h
		}
	}
	return support, resistance
}

// Volatility is the population standard deviation of simple
// period-over-period returns across the whole series, as a percentage.
// Fewer than two closes yield 0.
func Volatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance) * 100
}
