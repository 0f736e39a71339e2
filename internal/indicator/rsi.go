package indicator

// RSI computes the relative strength index from average gain vs. loss
// over the trailing `period` window. Returns 50.0 when fewer than
// period+1 closes exist, and 100.0 when the window has no losses.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return 50.0
	}
	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	return 100.0 - 100.0/(1.0+avgGain/avgLoss)
}

// RSILabel maps an RSI value to its conventional reading.
func RSILabel(rsi float64) string {
	switch {
	case rsi > 70:
		return "overbought"
	case rsi < 30:
		return "oversold"
	default:
		return "neutral"
	}
}
