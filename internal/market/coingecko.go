package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"tradeagent/internal/model"
)

// CoinGecko fetches cryptocurrency market data. Payloads the dashboard
// renders verbatim (markets, market chart, trending, global) pass
// through as raw JSON; the OHLC endpoint is normalized for the
// indicator engine.
type CoinGecko struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

// NewCoinGecko creates a client. apiKey may be empty for the public tier.
func NewCoinGecko(baseURL, apiKey string, rps float64, log *logrus.Logger) *CoinGecko {
	if rps <= 0 {
		rps = 0.5 // public tier allows roughly 30 calls/min
	}
	return &CoinGecko{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 3),
		log:     log.WithField("component", "coingecko"),
	}
}

func (c *CoinGecko) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Debug("coingecko non-success status")
		return nil, fmt.Errorf("coingecko %s: status %d: %w", path, resp.StatusCode, ErrUnavailable)
	}
	return json.RawMessage(body), nil
}

// Markets returns the coins/markets payload for a comma-joined id list,
// with sparkline and 1h/24h/7d change percentages included.
func (c *CoinGecko) Markets(ctx context.Context, ids, vsCurrency string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("ids", ids)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "50")
	q.Set("page", "1")
	q.Set("sparkline", "true")
	q.Set("price_change_percentage", "1h,24h,7d")
	return c.get(ctx, "/coins/markets", q)
}

// MarketChart returns the close-only price chart for one coin over a
// trailing window of days.
func (c *CoinGecko) MarketChart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", days)
	return c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", q)
}

// OHLC returns 90 days of candles for one coin, normalized into a
// PriceSeries. CoinGecko candles carry no volume.
func (c *CoinGecko) OHLC(ctx context.Context, id string) (model.PriceSeries, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", "90")
	raw, err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/ohlc", q)
	if err != nil {
		return model.PriceSeries{}, err
	}

	// Rows are [timestampMs, open, high, low, close].
	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return model.PriceSeries{}, fmt.Errorf("coingecko ohlc decode: %w: %w", err, ErrUnavailable)
	}
	series := model.PriceSeries{
		Closes: make([]float64, 0, len(rows)),
		Highs:  make([]float64, 0, len(rows)),
		Lows:   make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		series.Highs = append(series.Highs, row[2])
		series.Lows = append(series.Lows, row[3])
		series.Closes = append(series.Closes, row[4])
	}
	return series, nil
}

// Trending passes through the search/trending payload.
func (c *CoinGecko) Trending(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/search/trending", nil)
}

// Global passes through the global market stats payload.
func (c *CoinGecko) Global(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/global", nil)
}
