package model

// Quote is the normalized per-symbol snapshot served to the dashboard.
// JSON field names follow the CoinGecko markets shape so crypto and
// equity rows render through the same client code.
type Quote struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	CurrentPrice     float64 `json:"current_price"`
	ChangePercent24h float64 `json:"price_change_percentage_24h"`
	Currency         string  `json:"currency"`
}
