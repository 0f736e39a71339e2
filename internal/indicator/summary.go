package indicator

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"tradeagent/internal/model"
)

// Compute derives the full indicator payload for one symbol, including
// the pipe-delimited summary line consumed by the chat context builder.
func Compute(name string, price float64, series model.PriceSeries, currency string) model.IndicatorResult {
	closes := series.Closes
	rsi := RSI(closes, 14)
	sma20 := optional(SMA(closes, 20))
	sma50 := optional(SMA(closes, 50))
	sma200 := optional(SMA(closes, 200))
	var macd *model.MACD
	if m, ok := MACD(closes); ok {
		macd = &m
	}
	support, resistance := SupportResistance(series.Highs, series.Lows)
	volatility := Volatility(closes)

	res := model.IndicatorResult{
		Name:       name,
		Price:      price,
		RSI:        rsi,
		SMA20:      sma20,
		SMA50:      sma50,
		SMA200:     sma200,
		MACD:       macd,
		Support:    support,
		Resistance: resistance,
		Volatility: volatility,
		Currency:   currency,
	}
	res.Summary = summarize(&res, series)
	return res
}

// summarize renders the single-line human-readable digest. The exact
// field order and delimiters are relied on downstream; do not reformat.
func summarize(r *model.IndicatorResult, series model.PriceSeries) string {
	trend := Trend(r.Price, r.SMA20, r.SMA50)
	confidence := Confidence(trend, r.RSI, r.MACD)
	signal := Signal(confidence)
	volTrend := VolumeTrend(series.Volumes)

	macdStr := "N/A"
	if r.MACD != nil {
		if r.MACD.Histogram > 0 {
			macdStr = "bullish"
		} else {
			macdStr = "bearish"
		}
	}

	sym := "$"
	if r.Currency == "INR" {
		sym = "₹"
	}
	money := func(v float64) string {
		return sym + humanize.CommafWithDigits(v, 2)
	}
	optMoney := func(v *float64) string {
		if v == nil {
			return "N/A"
		}
		return money(*v)
	}

	return fmt.Sprintf(
		"%s: Price %s | Currency: %s | Trend: %s | RSI: %.1f (%s) | MACD: %s | Support: %s | Resistance: %s | Volatility: %.2f%% | Volume: %s | SMA20: %s | SMA50: %s | SMA200: %s | Signal: %s (confidence: %d%%)",
		r.Name, money(r.Price), r.Currency, trend, r.RSI, RSILabel(r.RSI), macdStr,
		money(r.Support), money(r.Resistance), r.Volatility, volTrend,
		optMoney(r.SMA20), optMoney(r.SMA50), optMoney(r.SMA200), signal, confidence,
	)
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
