package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `{"chart":{"result":[{
	"meta":{"symbol":"TCS.NS","shortName":"Tata Consultancy Services","currency":"INR",
		"regularMarketPrice":4100.5,"chartPreviousClose":4000},
	"timestamp":[1700000000,1700086400,1700172800],
	"indicators":{"quote":[{
		"open":[4000,null,4050],
		"high":[4110,null,4120],
		"low":[3990,null,4010],
		"close":[4005,null,4100.5],
		"volume":[1000000,null,1200000]
	}]}
}],"error":null}}`

func TestFetchChart_NormalizesPayload(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleChart))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, 100, testLogger())
	data, err := y.FetchChart(context.Background(), "TCS.NS", "5d", "1d")
	require.NoError(t, err)

	assert.Equal(t, "/TCS.NS", gotPath)
	assert.Equal(t, "interval=1d&range=5d", gotQuery)
	assert.Equal(t, "TCS.NS", data.Symbol)
	assert.Equal(t, "Tata Consultancy Services", data.Name)
	assert.Equal(t, "INR", data.Currency)
	assert.Equal(t, 4100.5, data.CurrentPrice)
	assert.Equal(t, 4000.0, data.PreviousClose)

	series := data.Series()
	assert.Equal(t, []float64{4005, 4100.5}, series.Closes)
	assert.Equal(t, []float64{4110, 4120}, series.Highs)
	assert.Equal(t, []float64{3990, 4010}, series.Lows)
	assert.Equal(t, []float64{1000000, 1200000}, series.Volumes)
}

func TestFetchChart_CaretSymbolIsEscaped(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		w.Write([]byte(sampleChart))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, 100, testLogger())
	_, err := y.FetchChart(context.Background(), "^NSEI", "1y", "1d")
	require.NoError(t, err)
	assert.Contains(t, gotURI, "%5ENSEI")
}

func TestFetchChart_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, 100, testLogger())
	_, err := y.FetchChart(context.Background(), "GONE", "5d", "1d")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchChart_ProviderErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, 100, testLogger())
	_, err := y.FetchChart(context.Background(), "GONE", "5d", "1d")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchChart_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL, 100, testLogger())
	_, err := y.FetchChart(context.Background(), "AAPL", "5d", "1d")
	assert.ErrorIs(t, err, ErrUnavailable)
}
