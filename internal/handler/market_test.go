package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeagent/internal/cache"
	"tradeagent/internal/market"
	"tradeagent/internal/model"
	"tradeagent/internal/service"
)

type fakeCrypto struct {
	trending json.RawMessage
	err      error
}

func (f *fakeCrypto) Markets(ctx context.Context, ids, vsCurrency string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), f.err
}
func (f *fakeCrypto) MarketChart(ctx context.Context, id, vsCurrency, days string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.err
}
func (f *fakeCrypto) OHLC(ctx context.Context, id string) (model.PriceSeries, error) {
	return model.PriceSeries{}, f.err
}
func (f *fakeCrypto) Trending(ctx context.Context) (json.RawMessage, error) {
	return f.trending, f.err
}
func (f *fakeCrypto) Global(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), f.err
}

type fakeCharts struct{}

func (f *fakeCharts) FetchChart(ctx context.Context, symbol, rng, interval string) (*market.ChartData, error) {
	return nil, market.ErrUnavailable
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newMarketRouter(crypto *fakeCrypto) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := quietLogger()
	c := cache.New(2 * time.Minute)
	charts := &fakeCharts{}
	agg := market.NewAggregator(charts, c, time.Second, log)
	svc := service.NewMarketService(c, crypto, charts, agg, log)

	router := gin.New()
	router.POST("/api/market-data", NewMarket(svc, log).Data)
	return router
}

func post(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestMarketData_UnknownAction(t *testing.T) {
	router := newMarketRouter(&fakeCrypto{})

	rec := post(t, router, "/api/market-data", `{"action":"bogus"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Unknown action"}`, rec.Body.String())
}

func TestMarketData_MalformedBody(t *testing.T) {
	router := newMarketRouter(&fakeCrypto{})

	rec := post(t, router, "/api/market-data", `{not json`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestMarketData_TrendingPassthrough(t *testing.T) {
	router := newMarketRouter(&fakeCrypto{trending: json.RawMessage(`{"coins":[{"id":"bitcoin"}]}`)})

	rec := post(t, router, "/api/market-data", `{"action":"trending"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"coins":[{"id":"bitcoin"}]}`, rec.Body.String())
}

func TestMarketData_TrendingUnavailable(t *testing.T) {
	router := newMarketRouter(&fakeCrypto{err: market.ErrUnavailable})

	rec := post(t, router, "/api/market-data", `{"action":"trending"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Unavailable"}`, rec.Body.String())
}
