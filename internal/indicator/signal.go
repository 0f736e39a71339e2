package indicator

import "tradeagent/internal/model"

// Trend labels the price/SMA alignment. Either SMA missing means the
// trend cannot be judged at all.
func Trend(price float64, sma20, sma50 *float64) string {
	if sma20 == nil || sma50 == nil {
		return "Neutral"
	}
	switch {
	case price > *sma20 && *sma20 > *sma50:
		return "Bullish"
	case price < *sma20 && *sma20 < *sma50:
		return "Bearish"
	default:
		return "Sideways"
	}
}

// Confidence scores the composite signal. Starts at 50, adjusted by
// trend alignment, RSI extremes and MACD histogram, clamped to [10,95].
func Confidence(trend string, rsi float64, macd *model.MACD) int {
	confidence := 50
	if trend == "Bullish" {
		confidence += 15
	}
	if trend == "Bearish" {
		confidence -= 15
	}
	if rsi < 30 {
		confidence += 10
	}
	if rsi > 70 {
		confidence -= 10
	}
	if macd != nil && macd.Histogram > 0 {
		confidence += 7
	}
	if confidence < 10 {
		confidence = 10
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

// Signal maps a confidence score to a recommendation.
func Signal(confidence int) string {
	switch {
	case confidence > 65:
		return "BUY"
	case confidence < 40:
		return "SELL"
	default:
		return "HOLD"
	}
}

// VolumeTrend labels the latest volume against the series average.
func VolumeTrend(volumes []float64) string {
	var avg, last float64
	if len(volumes) > 0 {
		for _, v := range volumes {
			avg += v
		}
		avg /= float64(len(volumes))
		last = volumes[len(volumes)-1]
	}
	switch {
	case last > avg*1.2:
		return "above avg"
	case last < avg*0.8:
		return "below avg"
	default:
		return "normal"
	}
}
