package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tradeagent/internal/cache"
	"tradeagent/internal/indicator"
	"tradeagent/internal/market"
	"tradeagent/internal/model"
)

// CryptoProvider is the crypto upstream capability the dispatcher needs.
type CryptoProvider interface {
	Markets(ctx context.Context, ids, vsCurrency string) (json.RawMessage, error)
	MarketChart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error)
	OHLC(ctx context.Context, id string) (model.PriceSeries, error)
	Trending(ctx context.Context) (json.RawMessage, error)
	Global(ctx context.Context) (json.RawMessage, error)
}

// Request is the action-dispatched body of the market-data endpoint.
// Days is a json.Number because clients send both "7" and 7.
type Request struct {
	Action     string      `json:"action"`
	IDs        string      `json:"ids"`
	VsCurrency string      `json:"vs_currency"`
	Days       json.Number `json:"days"`
	Symbol     string      `json:"symbol"`
	Range      string      `json:"range"`
	Interval   string      `json:"interval"`
}

// StocksResponse partitions the equity catalog into its four buckets.
// A bucket whose upstream category failed entirely is an empty list,
// never an error.
type StocksResponse struct {
	Global      []model.Quote `json:"global"`
	Indian      []model.Quote `json:"indian"`
	Indices     []model.Quote `json:"indices"`
	Commodities []model.Quote `json:"commodities"`
}

// OHLCRow is one candle of a stock chart. Open/high/low keep provider
// nulls; rows with a null close are dropped before this is built.
type OHLCRow struct {
	Timestamp int64    `json:"timestamp"`
	Time      string   `json:"time"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     float64  `json:"close"`
	Volume    *float64 `json:"volume"`
}

// StockChartMeta identifies the charted symbol.
type StockChartMeta struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Currency     string  `json:"currency"`
	CurrentPrice float64 `json:"currentPrice"`
}

// StockChartResponse is the stock-chart action payload.
type StockChartResponse struct {
	Meta StockChartMeta `json:"meta"`
	OHLC []OHLCRow      `json:"ohlc"`
}

// MarketService dispatches the fixed action set over the upstream
// clients, cache-first on every action.
type MarketService struct {
	cache  *cache.Cache
	crypto CryptoProvider
	charts market.ChartFetcher
	agg    *market.Aggregator
	log    *logrus.Entry
}

// NewMarketService wires the dispatcher. All collaborators are injected;
// the cache instance is shared with every other component.
func NewMarketService(c *cache.Cache, crypto CryptoProvider, charts market.ChartFetcher, agg *market.Aggregator, log *logrus.Logger) *MarketService {
	return &MarketService{
		cache:  c,
		crypto: crypto,
		charts: charts,
		agg:    agg,
		log:    log.WithField("component", "market"),
	}
}

// Dispatch routes one request to its action handler.
func (s *MarketService) Dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Action {
	case "prices":
		return s.Prices(ctx, req.IDs, req.VsCurrency)
	case "chart":
		return s.Chart(ctx, req.IDs, req.VsCurrency, req.Days.String())
	case "stocks":
		return s.Stocks(ctx)
	case "stock-chart":
		return s.StockChart(ctx, firstNonEmpty(req.Symbol, req.IDs), req.Range, req.Interval)
	case "indicators":
		sym := firstNonEmpty(req.Symbol, req.IDs)
		if sym == "" {
			return nil, &StatusError{Status: http.StatusBadRequest, Message: "symbol is required"}
		}
		return s.Indicators(ctx, sym)
	case "trending":
		return s.passthrough(ctx, "trending", s.crypto.Trending)
	case "global":
		return s.passthrough(ctx, "global", s.crypto.Global)
	default:
		return nil, ErrUnknownAction
	}
}

// Prices serves the crypto markets payload. Upstream failure degrades to
// an empty list and caches nothing.
func (s *MarketService) Prices(ctx context.Context, ids, vsCurrency string) (json.RawMessage, error) {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	idKey := ids
	if idKey == "" {
		idKey = "default"
	}
	key := fmt.Sprintf("prices:%s:%s", vsCurrency, idKey)
	if v, ok := s.cache.Get(key); ok {
		return v.(json.RawMessage), nil
	}

	coinIDs := ids
	if coinIDs == "" {
		coinIDs = market.AllCryptoIDs()
	}
	raw, err := s.crypto.Markets(ctx, coinIDs, vsCurrency)
	if err != nil {
		s.log.WithError(err).Warn("prices upstream failed, serving empty list")
		return json.RawMessage("[]"), nil
	}
	s.cache.Set(key, raw)
	return raw, nil
}

// Chart serves one coin's market chart. Upstream failure degrades to an
// empty prices array and caches nothing.
func (s *MarketService) Chart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error) {
	if id == "" {
		return nil, &StatusError{Status: http.StatusBadRequest, Message: "ids is required"}
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	if days == "" {
		days = "7"
	}
	key := fmt.Sprintf("chart:%s:%s:%s", id, vsCurrency, days)
	if v, ok := s.cache.Get(key); ok {
		return v.(json.RawMessage), nil
	}

	raw, err := s.crypto.MarketChart(ctx, id, vsCurrency, days)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Warn("chart upstream failed, serving empty chart")
		return json.RawMessage(`{"prices":[]}`), nil
	}
	s.cache.Set(key, raw)
	return raw, nil
}

// Stocks fetches the four catalog buckets as independent concurrent
// fan-outs. Per-bucket failures degrade to empty lists.
func (s *MarketService) Stocks(ctx context.Context) (StocksResponse, error) {
	const key = "stocks:all"
	if v, ok := s.cache.Get(key); ok {
		return v.(StocksResponse), nil
	}

	type category struct {
		name    string
		entries []market.CatalogEntry
		out     *[]model.Quote
	}
	resp := StocksResponse{}
	categories := []category{
		{"global", market.GlobalStocks, &resp.Global},
		{"indian", market.IndianStocks, &resp.Indian},
		{"indices", market.GlobalIndices, &resp.Indices},
		{"commodities", market.Commodities, &resp.Commodities},
	}

	var wg sync.WaitGroup
	for _, cat := range categories {
		wg.Add(1)
		go func(cat category) {
			defer wg.Done()
			quotes, failures := s.agg.Quotes(ctx, cat.entries)
			if len(failures) > 0 {
				s.log.WithFields(logrus.Fields{"category": cat.name, "failed": len(failures), "ok": len(quotes)}).
					Info("stock category fetched with failures")
			}
			*cat.out = quotes
		}(cat)
	}
	wg.Wait()

	s.cache.Set(key, resp)
	return resp, nil
}

// StockChart serves the OHLC chart for one equity/index/commodity
// symbol. An unavailable symbol is a 502 and performs no cache write.
func (s *MarketService) StockChart(ctx context.Context, symbol, rng, interval string) (StockChartResponse, error) {
	if symbol == "" {
		return StockChartResponse{}, &StatusError{Status: http.StatusBadRequest, Message: "symbol is required"}
	}
	if rng == "" {
		rng = "3mo"
	}
	if interval == "" {
		interval = "1d"
	}
	key := fmt.Sprintf("stock-chart:%s:%s:%s", symbol, rng, interval)
	if v, ok := s.cache.Get(key); ok {
		return v.(StockChartResponse), nil
	}

	data, err := s.charts.FetchChart(ctx, symbol, rng, interval)
	if err != nil {
		s.log.WithError(err).WithField("symbol", symbol).Warn("stock chart unavailable")
		return StockChartResponse{}, &StatusError{Status: http.StatusBadGateway, Message: "Stock chart unavailable"}
	}

	rows := make([]OHLCRow, 0, len(data.Timestamps))
	for i, ts := range data.Timestamps {
		if i >= len(data.Close) || data.Close[i] == nil {
			continue
		}
		row := OHLCRow{
			Timestamp: ts * 1000,
			Time:      time.Unix(ts, 0).UTC().Format("Jan 2"),
			Close:     *data.Close[i],
		}
		if i < len(data.Open) {
			row.Open = data.Open[i]
		}
		if i < len(data.High) {
			row.High = data.High[i]
		}
		if i < len(data.Low) {
			row.Low = data.Low[i]
		}
		if i < len(data.Volume) {
			row.Volume = data.Volume[i]
		}
		rows = append(rows, row)
	}

	resp := StockChartResponse{
		Meta: StockChartMeta{
			Symbol:       market.DisplaySymbol(data.Symbol),
			Name:         data.Name,
			Currency:     data.Currency,
			CurrentPrice: data.CurrentPrice,
		},
		OHLC: rows,
	}
	s.cache.Set(key, resp)
	return resp, nil
}

// Indicators computes the derived-indicator payload for one symbol,
// routing known CoinGecko ids to the crypto provider and everything
// else to the chart provider. Shared by the HTTP dispatch and the chat
// context assembler, so both see the same cache.
func (s *MarketService) Indicators(ctx context.Context, symbol string) (model.IndicatorResult, error) {
	key := "indicators:" + symbol
	if v, ok := s.cache.Get(key); ok {
		return v.(model.IndicatorResult), nil
	}

	var (
		series   model.PriceSeries
		name     string
		price    float64
		currency string
	)
	if market.IsCryptoID(symbol) {
		ohlc, err := s.crypto.OHLC(ctx, strings.ToLower(symbol))
		if err != nil {
			s.log.WithError(err).WithField("symbol", symbol).Warn("crypto ohlc unavailable")
			return model.IndicatorResult{}, &StatusError{Status: http.StatusNotFound, Message: "No data available for indicators"}
		}
		series = ohlc
		price = series.LastClose()
		name = capitalize(symbol)
		currency = "USD"
	} else {
		data, err := s.charts.FetchChart(ctx, symbol, "1y", "1d")
		if err != nil {
			s.log.WithError(err).WithField("symbol", symbol).Warn("chart data unavailable for indicators")
			return model.IndicatorResult{}, &StatusError{Status: http.StatusNotFound, Message: "No data available for indicators"}
		}
		series = data.Series()
		price = data.CurrentPrice
		if price == 0 {
			price = series.LastClose()
		}
		name = data.Name
		currency = data.Currency
		if currency == "" {
			currency = "USD"
		}
	}
	if len(series.Closes) == 0 {
		return model.IndicatorResult{}, &StatusError{Status: http.StatusNotFound, Message: "No data available for indicators"}
	}

	res := indicator.Compute(name, price, series, currency)
	s.cache.Set(key, res)
	return res, nil
}

func (s *MarketService) passthrough(ctx context.Context, key string, fetch func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.(json.RawMessage), nil
	}
	raw, err := fetch(ctx)
	if err != nil {
		s.log.WithError(err).WithField("action", key).Warn("passthrough upstream failed")
		return nil, &StatusError{Status: http.StatusBadGateway, Message: "Unavailable"}
	}
	s.cache.Set(key, raw)
	return raw, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
