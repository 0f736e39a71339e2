package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, GlobalStocks, 50)
	assert.Len(t, IndianStocks, 45)
	assert.Len(t, GlobalIndices, 24)
	assert.Len(t, Commodities, 3)
	assert.Len(t, CryptoIDs, 40)
}

func TestDisplaySymbol(t *testing.T) {
	assert.Equal(t, "Nifty 50", DisplaySymbol("^NSEI"))
	assert.Equal(t, "Gold", DisplaySymbol("GC=F"))
	assert.Equal(t, "RELIANCE", DisplaySymbol("RELIANCE.NS"))
	assert.Equal(t, "AAPL", DisplaySymbol("AAPL"))
}

func TestIsCryptoID(t *testing.T) {
	assert.True(t, IsCryptoID("bitcoin"))
	assert.True(t, IsCryptoID("Bitcoin"))
	assert.True(t, IsCryptoID("avalanche-2"))
	assert.False(t, IsCryptoID("TSLA"))
	assert.False(t, IsCryptoID(""))
}

func TestCatalogCurrency(t *testing.T) {
	assert.Equal(t, "INR", CatalogCurrency(CatalogEntry{Currency: "INR"}, "USD"))
	assert.Equal(t, "JPY", CatalogCurrency(CatalogEntry{}, "JPY"))
	assert.Equal(t, "USD", CatalogCurrency(CatalogEntry{}, ""))
}

func TestIndicesCarryHomeCurrencies(t *testing.T) {
	for _, e := range GlobalIndices {
		assert.NotEmpty(t, e.Currency, "index %s", e.Symbol)
	}
	for _, e := range Commodities {
		assert.Equal(t, "USD", e.Currency, "commodity %s", e.Symbol)
	}
}
