package market

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tradeagent/internal/cache"
	"tradeagent/internal/model"
)

// ChartFetcher is the single-symbol capability the aggregator fans out
// over.
type ChartFetcher interface {
	FetchChart(ctx context.Context, symbol, rng, interval string) (*ChartData, error)
}

// FetchFailure records one symbol that produced no quote. Kept for
// diagnostics only; the success list is the contract.
type FetchFailure struct {
	Symbol string
	Err    error
}

// Aggregator fans a batch of symbol fetches out concurrently, waits for
// every one to finish, and returns only the successes. A slow symbol is
// cut off by the per-symbol deadline and counted as an ordinary
// failure; nothing truncates the batch as a whole.
type Aggregator struct {
	fetcher ChartFetcher
	cache   *cache.Cache
	timeout time.Duration
	log     *logrus.Entry
}

// NewAggregator creates an aggregator with the given per-symbol deadline.
func NewAggregator(fetcher ChartFetcher, c *cache.Cache, timeout time.Duration, log *logrus.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{
		fetcher: fetcher,
		cache:   c,
		timeout: timeout,
		log:     log.WithField("component", "aggregator"),
	}
}

// Quotes fetches a 5d/1d chart for every catalog entry concurrently and
// builds a normalized Quote per success. Individual quotes are cached
// under their symbol so overlapping batches reuse fresh results.
func (a *Aggregator) Quotes(ctx context.Context, entries []CatalogEntry) ([]model.Quote, []FetchFailure) {
	quotes := make([]*model.Quote, len(entries))
	errs := make([]error, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry CatalogEntry) {
			defer wg.Done()

			key := "stock:" + entry.Symbol
			if cached, ok := a.cache.Get(key); ok {
				if q, ok := cached.(model.Quote); ok {
					quotes[i] = &q
					return
				}
			}

			fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			data, err := a.fetcher.FetchChart(fetchCtx, entry.Symbol, "5d", "1d")
			if err != nil {
				errs[i] = err
				return
			}
			q := buildQuote(entry, data)
			a.cache.Set(key, q)
			quotes[i] = &q
		}(i, entry)
	}
	wg.Wait()

	out := make([]model.Quote, 0, len(entries))
	var failures []FetchFailure
	for i := range entries {
		if quotes[i] != nil {
			out = append(out, *quotes[i])
			continue
		}
		failures = append(failures, FetchFailure{Symbol: entries[i].Symbol, Err: errs[i]})
	}
	for _, f := range failures {
		a.log.WithError(f.Err).WithField("symbol", f.Symbol).Debug("symbol fetch failed")
	}
	return out, failures
}

func buildQuote(entry CatalogEntry, data *ChartData) model.Quote {
	closes := compact(data.Close)
	last := data.CurrentPrice
	if last == 0 && len(closes) > 0 {
		last = closes[len(closes)-1]
	}
	prev := data.PreviousClose
	if prev == 0 && len(closes) > 1 {
		prev = closes[len(closes)-2]
	}
	if prev == 0 {
		prev = last
	}
	change := 0.0
	if prev != 0 {
		change = (last - prev) / prev * 100
	}
	return model.Quote{
		ID:               entry.Symbol,
		Symbol:           DisplaySymbol(entry.Symbol),
		Name:             entry.Name,
		Type:             entry.Type,
		CurrentPrice:     last,
		ChangePercent24h: change,
		Currency:         CatalogCurrency(entry, data.Currency),
	}
}
