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

// Yahoo fetches quote charts from the Yahoo Finance chart API and
// normalizes them into ChartData.
type Yahoo struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

// NewYahoo creates a Yahoo client. rps paces outbound requests; it does
// not retry or drop.
func NewYahoo(baseURL string, rps float64, log *logrus.Logger) *Yahoo {
	if rps <= 0 {
		rps = 5
	}
	return &Yahoo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		log:     log.WithField("component", "yahoo"),
	}
}

// ChartData is the normalized chart payload. The raw arrays stay
// aligned with Timestamps; nulls from the provider are kept as nil so
// callers can decide per-field how to treat gaps.
type ChartData struct {
	Symbol        string
	Name          string
	Currency      string
	CurrentPrice  float64
	PreviousClose float64
	Timestamps    []int64
	Open          []*float64
	High          []*float64
	Low           []*float64
	Close         []*float64
	Volume        []*float64
}

// Series projects the chart into the indicator engine's input arrays,
// dropping null points per array and preserving relative order.
func (d *ChartData) Series() model.PriceSeries {
	return model.PriceSeries{
		Closes:  compact(d.Close),
		Highs:   compact(d.High),
		Lows:    compact(d.Low),
		Volumes: compact(d.Volume),
	}
}

func compact(vals []*float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchChart retrieves one symbol's chart for the given range/interval
// pair. Any non-success status or unusable payload yields
// ErrUnavailable for this symbol only.
func (y *Yahoo) FetchChart(ctx context.Context, symbol, rng, interval string) (*ChartData, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		y.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		y.log.WithFields(logrus.Fields{"symbol": symbol, "status": resp.StatusCode}).Debug("yahoo non-success status")
		return nil, fmt.Errorf("yahoo %s: status %d: %w", symbol, resp.StatusCode, ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode %s: %w: %w", symbol, err, ErrUnavailable)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %s: %w", symbol, chart.Chart.Error.Description, ErrUnavailable)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo %s: empty result: %w", symbol, ErrUnavailable)
	}

	result := chart.Chart.Result[0]
	data := &ChartData{
		Symbol:        result.Meta.Symbol,
		Name:          result.Meta.ShortName,
		Currency:      result.Meta.Currency,
		CurrentPrice:  result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.ChartPreviousClose,
		Timestamps:    result.Timestamp,
	}
	if data.Symbol == "" {
		data.Symbol = symbol
	}
	if data.Name == "" {
		data.Name = result.Meta.LongName
	}
	if data.Name == "" {
		data.Name = symbol
	}
	if data.Currency == "" {
		data.Currency = "USD"
	}
	if data.PreviousClose == 0 {
		data.PreviousClose = result.Meta.PreviousClose
	}
	if len(result.Indicators.Quote) > 0 {
		q := result.Indicators.Quote[0]
		data.Open, data.High, data.Low, data.Close, data.Volume = q.Open, q.High, q.Low, q.Close, q.Volume
	}
	if data.CurrentPrice == 0 {
		if closes := compact(data.Close); len(closes) > 0 {
			data.CurrentPrice = closes[len(closes)-1]
		}
	}
	return data, nil
}
