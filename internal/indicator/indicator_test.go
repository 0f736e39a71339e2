package indicator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeagent/internal/model"
)

func seq(start, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(start + i)
	}
	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRSI_InsufficientData(t *testing.T) {
	for n := 0; n < 15; n++ {
		assert.Equal(t, 50.0, RSI(seq(1, n), 14), "length %d", n)
	}
}

func TestRSI_MonotonicSeries(t *testing.T) {
	assert.Equal(t, 100.0, RSI(seq(1, 30), 14), "pure gains")
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 - i)
	}
	assert.Equal(t, 0.0, RSI(closes, 14), "pure losses")
}

func TestRSI_ConstantSeriesIsNeutral(t *testing.T) {
	assert.Equal(t, 50.0, RSI(constant(10, 30), 14))
}

func TestRSILabel(t *testing.T) {
	assert.Equal(t, "overbought", RSILabel(70.1))
	assert.Equal(t, "oversold", RSILabel(29.9))
	assert.Equal(t, "neutral", RSILabel(70))
	assert.Equal(t, "neutral", RSILabel(30))
	assert.Equal(t, "neutral", RSILabel(50))
}

func TestSMA(t *testing.T) {
	for _, period := range []int{20, 50, 200} {
		_, ok := SMA(seq(1, period-1), period)
		assert.False(t, ok, "period %d with short series", period)

		got, ok := SMA(seq(1, period+10), period)
		require.True(t, ok)
		// mean of the last `period` values of 1..period+10
		want := float64(period+10+11) / 2.0
		assert.InDelta(t, want, got, 1e-9, "period %d", period)
	}
}

func TestEMA(t *testing.T) {
	_, ok := EMA(seq(1, 11), 12)
	assert.False(t, ok)

	// With exactly `period` closes the EMA equals the seed SMA.
	got, ok := EMA(constant(7, 12), 12)
	require.True(t, ok)
	assert.InDelta(t, 7.0, got, 1e-9)

	// One extra close folds in with k = 2/(period+1).
	closes := append(constant(10, 3), 14)
	got, ok = EMA(closes, 3)
	require.True(t, ok)
	assert.InDelta(t, 14*0.5+10*0.5, got, 1e-9)
}

func TestMACD_SignalIsFixedRatio(t *testing.T) {
	closes := seq(1, 40)
	m, ok := MACD(closes)
	require.True(t, ok)
	assert.InDelta(t, m.MACD*0.8, m.Signal, 1e-12)
	assert.InDelta(t, m.MACD-m.Signal, m.Histogram, 1e-12)

	_, ok = MACD(seq(1, 25))
	assert.False(t, ok, "needs 26 closes for the slow EMA")
}

func TestSupportResistance_Trailing20(t *testing.T) {
	support, resistance := SupportResistance(seq(1, 25), seq(1, 25))
	assert.Equal(t, 6.0, support)
	assert.Equal(t, 25.0, resistance)

	support, resistance = SupportResistance(nil, nil)
	assert.Zero(t, support)
	assert.Zero(t, resistance)
}

func TestVolatility(t *testing.T) {
	assert.Zero(t, Volatility(nil))
	assert.Zero(t, Volatility([]float64{5}))
	assert.Zero(t, Volatility(constant(10, 50)))
	// returns +10% then -10%, mean 0, stddev 0.1 -> 10%
	assert.InDelta(t, 10.0, Volatility([]float64{100, 110, 99}), 1e-9)
}

func TestTrend(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	assert.Equal(t, "Neutral", Trend(10, nil, f(9)))
	assert.Equal(t, "Neutral", Trend(10, f(9), nil))
	assert.Equal(t, "Bullish", Trend(10, f(9), f(8)))
	assert.Equal(t, "Bearish", Trend(7, f(8), f(9)))
	assert.Equal(t, "Sideways", Trend(10, f(11), f(9)))
}

func TestConfidence_AlwaysClamped(t *testing.T) {
	macds := []*model.MACD{nil, {Histogram: 1}, {Histogram: -1}}
	for _, trend := range []string{"Bullish", "Bearish", "Sideways", "Neutral"} {
		for _, rsi := range []float64{0, 25, 50, 75, 100} {
			for _, m := range macds {
				c := Confidence(trend, rsi, m)
				assert.GreaterOrEqual(t, c, 10, "%s rsi=%v", trend, rsi)
				assert.LessOrEqual(t, c, 95, "%s rsi=%v", trend, rsi)
			}
		}
	}
}

func TestConfidenceScoring(t *testing.T) {
	tests := []struct {
		trend string
		rsi   float64
		macd  *model.MACD
		want  int
	}{
		{"Sideways", 50, nil, 50},
		{"Bullish", 50, nil, 65},
		{"Bearish", 50, nil, 35},
		{"Bullish", 25, &model.MACD{Histogram: 2}, 82},
		{"Bearish", 75, &model.MACD{Histogram: -2}, 25},
	}
	for _, tt := range tests {
		got := Confidence(tt.trend, tt.rsi, tt.macd)
		assert.Equal(t, tt.want, got, "%s rsi=%v", tt.trend, tt.rsi)
	}
}

func TestSignal(t *testing.T) {
	assert.Equal(t, "BUY", Signal(66))
	assert.Equal(t, "HOLD", Signal(65))
	assert.Equal(t, "HOLD", Signal(40))
	assert.Equal(t, "SELL", Signal(39))
}

func TestVolumeTrend(t *testing.T) {
	assert.Equal(t, "normal", VolumeTrend(nil))
	assert.Equal(t, "above avg", VolumeTrend([]float64{10, 10, 10, 50}))
	assert.Equal(t, "below avg", VolumeTrend([]float64{50, 50, 50, 1}))
	assert.Equal(t, "normal", VolumeTrend([]float64{10, 10, 10, 10}))
}

func TestCompute_ConstantSeries(t *testing.T) {
	series := model.PriceSeries{
		Closes: constant(10, 30),
		Highs:  constant(10, 30),
		Lows:   constant(10, 30),
	}
	res := Compute("Testium", 10, series, "USD")

	assert.Equal(t, 50.0, res.RSI)
	assert.Zero(t, res.Volatility)
	require.NotNil(t, res.SMA20)
	assert.Equal(t, 10.0, *res.SMA20)
	assert.Nil(t, res.SMA50)
	assert.Nil(t, res.SMA200)
	require.NotNil(t, res.MACD)
	assert.Zero(t, res.MACD.Histogram)

	want := "Testium: Price $10 | Currency: USD | Trend: Neutral | RSI: 50.0 (neutral) | MACD: bearish | Support: $10 | Resistance: $10 | Volatility: 0.00% | Volume: normal | SMA20: $10 | SMA50: N/A | SMA200: N/A | Signal: HOLD (confidence: 50%)"
	assert.Equal(t, want, res.Summary)
}

func TestCompute_RupeeSymbol(t *testing.T) {
	series := model.PriceSeries{Closes: constant(1500, 25), Highs: constant(1510, 25), Lows: constant(1490, 25)}
	res := Compute("Reliance Industries", 1500, series, "INR")
	assert.Contains(t, res.Summary, "Price ₹1,500")
	assert.Contains(t, res.Summary, "Currency: INR")
	assert.NotContains(t, res.Summary, "$")
}

func TestCompute_LargeNumbersGrouped(t *testing.T) {
	series := model.PriceSeries{Closes: constant(65000, 25), Highs: constant(66000, 25), Lows: constant(64000, 25)}
	res := Compute("Bitcoin", 65432.1, series, "USD")
	assert.Contains(t, res.Summary, fmt.Sprintf("Price $%s", "65,432.1"))
	assert.Contains(t, res.Summary, "Support: $64,000")
	assert.Contains(t, res.Summary, "Resistance: $66,000")
}
