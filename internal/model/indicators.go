package model

// MACD holds the MACD line, its signal line and the histogram.
type MACD struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// IndicatorResult is the full derived-indicator payload for one symbol.
// Moving averages are nil when the series is too short to compute them.
type IndicatorResult struct {
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	RSI        float64  `json:"rsi"`
	SMA20      *float64 `json:"sma20"`
	SMA50      *float64 `json:"sma50"`
	SMA200     *float64 `json:"sma200"`
	MACD       *MACD    `json:"macd"`
	Support    float64  `json:"support"`
	Resistance float64  `json:"resistance"`
	Volatility float64  `json:"volatility"`
	Currency   string   `json:"currency"`
	Summary    string   `json:"summary"`
}
