package market

import "strings"

// CatalogEntry describes one symbol in the fixed asset catalog.
// Currency is only set where the home currency is known up front
// (indices, commodities); everything else falls back to provider
// metadata, then USD.
type CatalogEntry struct {
	Symbol   string
	Name     string
	Type     string
	Currency string
}

// GlobalStocks is the fixed catalog of large-cap global equities.
var GlobalStocks = []CatalogEntry{
	{Symbol: "AAPL", Name: "Apple", Type: "global"},
	{Symbol: "MSFT", Name: "Microsoft", Type: "global"},
	{Symbol: "NVDA", Name: "Nvidia", Type: "global"},
	{Symbol: "AMZN", Name: "Amazon", Type: "global"},
	{Symbol: "GOOGL", Name: "Alphabet (Google)", Type: "global"},
	{Symbol: "TSLA", Name: "Tesla", Type: "global"},
	{Symbol: "META", Name: "Meta Platforms", Type: "global"},
	{Symbol: "NFLX", Name: "Netflix", Type: "global"},
	{Symbol: "AMD", Name: "AMD", Type: "global"},
	{Symbol: "INTC", Name: "Intel", Type: "global"},
	{Symbol: "JPM", Name: "JPMorgan Chase", Type: "global"},
	{Symbol: "V", Name: "Visa", Type: "global"},
	{Symbol: "WMT", Name: "Walmart", Type: "global"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Type: "global"},
	{Symbol: "PG", Name: "Procter & Gamble", Type: "global"},
	{Symbol: "MA", Name: "Mastercard", Type: "global"},
	{Symbol: "UNH", Name: "UnitedHealth", Type: "global"},
	{Symbol: "HD", Name: "Home Depot", Type: "global"},
	{Symbol: "DIS", Name: "Walt Disney", Type: "global"},
	{Symbol: "BAC", Name: "Bank of America", Type: "global"},
	{Symbol: "CRM", Name: "Salesforce", Type: "global"},
	{Symbol: "ADBE", Name: "Adobe", Type: "global"},
	{Symbol: "ORCL", Name: "Oracle", Type: "global"},
	{Symbol: "CSCO", Name: "Cisco", Type: "global"},
	{Symbol: "PEP", Name: "PepsiCo", Type: "global"},
	{Symbol: "KO", Name: "Coca-Cola", Type: "global"},
	{Symbol: "AVGO", Name: "Broadcom", Type: "global"},
	{Symbol: "MRK", Name: "Merck", Type: "global"},
	{Symbol: "NKE", Name: "Nike", Type: "global"},
	{Symbol: "PYPL", Name: "PayPal", Type: "global"},
	{Symbol: "QCOM", Name: "Qualcomm", Type: "global"},
	{Symbol: "TXN", Name: "Texas Instruments", Type: "global"},
	{Symbol: "IBM", Name: "IBM", Type: "global"},
	{Symbol: "GS", Name: "Goldman Sachs", Type: "global"},
	{Symbol: "MS", Name: "Morgan Stanley", Type: "global"},
	{Symbol: "AXP", Name: "American Express", Type: "global"},
	{Symbol: "SBUX", Name: "Starbucks", Type: "global"},
	{Symbol: "CVX", Name: "Chevron", Type: "global"},
	{Symbol: "XOM", Name: "ExxonMobil", Type: "global"},
	{Symbol: "LLY", Name: "Eli Lilly", Type: "global"},
	{Symbol: "ABBV", Name: "AbbVie", Type: "global"},
	{Symbol: "TMO", Name: "Thermo Fisher", Type: "global"},
	{Symbol: "NOW", Name: "ServiceNow", Type: "global"},
	{Symbol: "UBER", Name: "Uber", Type: "global"},
	{Symbol: "ABNB", Name: "Airbnb", Type: "global"},
	{Symbol: "SPOT", Name: "Spotify", Type: "global"},
	{Symbol: "COIN", Name: "Coinbase", Type: "global"},
	{Symbol: "PLTR", Name: "Palantir", Type: "global"},
	{Symbol: "NET", Name: "Cloudflare", Type: "global"},
	{Symbol: "CRWD", Name: "CrowdStrike", Type: "global"},
}

// IndianStocks carry the NSE market suffix, stripped for display but
// retained for the upstream query.
var IndianStocks = []CatalogEntry{
	{Symbol: "RELIANCE.NS", Name: "Reliance Industries", Type: "india"},
	{Symbol: "TCS.NS", Name: "TCS", Type: "india"},
	{Symbol: "INFY.NS", Name: "Infosys", Type: "india"},
	{Symbol: "HDFCBANK.NS", Name: "HDFC Bank", Type: "india"},
	{Symbol: "ICICIBANK.NS", Name: "ICICI Bank", Type: "india"},
	{Symbol: "SBIN.NS", Name: "SBI", Type: "india"},
	{Symbol: "LT.NS", Name: "Larsen & Toubro", Type: "india"},
	{Symbol: "ITC.NS", Name: "ITC", Type: "india"},
	{Symbol: "AXISBANK.NS", Name: "Axis Bank", Type: "india"},
	{Symbol: "KOTAKBANK.NS", Name: "Kotak Mahindra Bank", Type: "india"},
	{Symbol: "BAJFINANCE.NS", Name: "Bajaj Finance", Type: "india"},
	{Symbol: "MARUTI.NS", Name: "Maruti Suzuki", Type: "india"},
	{Symbol: "HCLTECH.NS", Name: "HCL Technologies", Type: "india"},
	{Symbol: "WIPRO.NS", Name: "Wipro", Type: "india"},
	{Symbol: "SUNPHARMA.NS", Name: "Sun Pharma", Type: "india"},
	{Symbol: "TITAN.NS", Name: "Titan Company", Type: "india"},
	{Symbol: "BHARTIARTL.NS", Name: "Bharti Airtel", Type: "india"},
	{Symbol: "ADANIENT.NS", Name: "Adani Enterprises", Type: "india"},
	{Symbol: "TATAMOTORS.NS", Name: "Tata Motors", Type: "india"},
	{Symbol: "TATASTEEL.NS", Name: "Tata Steel", Type: "india"},
	{Symbol: "POWERGRID.NS", Name: "Power Grid Corp", Type: "india"},
	{Symbol: "NTPC.NS", Name: "NTPC", Type: "india"},
	{Symbol: "HINDALCO.NS", Name: "Hindalco", Type: "india"},
	{Symbol: "ULTRACEMCO.NS", Name: "UltraTech Cement", Type: "india"},
	{Symbol: "TECHM.NS", Name: "Tech Mahindra", Type: "india"},
	{Symbol: "ASIANPAINT.NS", Name: "Asian Paints", Type: "india"},
	{Symbol: "BAJAJFINSV.NS", Name: "Bajaj Finserv", Type: "india"},
	{Symbol: "ONGC.NS", Name: "ONGC", Type: "india"},
	{Symbol: "COALINDIA.NS", Name: "Coal India", Type: "india"},
	{Symbol: "DRREDDY.NS", Name: "Dr. Reddy's", Type: "india"},
	{Symbol: "DIVISLAB.NS", Name: "Divi's Laboratories", Type: "india"},
	{Symbol: "CIPLA.NS", Name: "Cipla", Type: "india"},
	{Symbol: "APOLLOHOSP.NS", Name: "Apollo Hospitals", Type: "india"},
	{Symbol: "EICHERMOT.NS", Name: "Eicher Motors", Type: "india"},
	{Symbol: "NESTLEIND.NS", Name: "Nestle India", Type: "india"},
	{Symbol: "HEROMOTOCO.NS", Name: "Hero MotoCorp", Type: "india"},
	{Symbol: "BRITANNIA.NS", Name: "Britannia", Type: "india"},
	{Symbol: "INDUSINDBK.NS", Name: "IndusInd Bank", Type: "india"},
	{Symbol: "HINDUNILVR.NS", Name: "Hindustan Unilever", Type: "india"},
	{Symbol: "GRASIM.NS", Name: "Grasim Industries", Type: "india"},
	{Symbol: "JSWSTEEL.NS", Name: "JSW Steel", Type: "india"},
	{Symbol: "VEDL.NS", Name: "Vedanta", Type: "india"},
	{Symbol: "TATAPOWER.NS", Name: "Tata Power", Type: "india"},
	{Symbol: "ZOMATO.NS", Name: "Zomato", Type: "india"},
	{Symbol: "PAYTM.NS", Name: "Paytm (One97)", Type: "india"},
}

// GlobalIndices with their home currencies.
var GlobalIndices = []CatalogEntry{
	{Symbol: "^NSEI", Name: "Nifty 50", Type: "index", Currency: "INR"},
	{Symbol: "^BSESN", Name: "BSE Sensex", Type: "index", Currency: "INR"},
	{Symbol: "^GSPC", Name: "S&P 500", Type: "index", Currency: "USD"},
	{Symbol: "^DJI", Name: "Dow Jones", Type: "index", Currency: "USD"},
	{Symbol: "^IXIC", Name: "NASDAQ Composite", Type: "index", Currency: "USD"},
	{Symbol: "^RUT", Name: "Russell 2000", Type: "index", Currency: "USD"},
	{Symbol: "^FTSE", Name: "FTSE 100", Type: "index", Currency: "GBP"},
	{Symbol: "^GDAXI", Name: "DAX", Type: "index", Currency: "EUR"},
	{Symbol: "^FCHI", Name: "CAC 40", Type: "index", Currency: "EUR"},
	{Symbol: "^STOXX50E", Name: "Euro Stoxx 50", Type: "index", Currency: "EUR"},
	{Symbol: "^IBEX", Name: "IBEX 35", Type: "index", Currency: "EUR"},
	{Symbol: "^N225", Name: "Nikkei 225", Type: "index", Currency: "JPY"},
	{Symbol: "^HSI", Name: "Hang Seng", Type: "index", Currency: "HKD"},
	{Symbol: "000001.SS", Name: "Shanghai Composite", Type: "index", Currency: "CNY"},
	{Symbol: "^KS11", Name: "KOSPI", Type: "index", Currency: "KRW"},
	{Symbol: "^STI", Name: "Straits Times", Type: "index", Currency: "SGD"},
	{Symbol: "^AXJO", Name: "ASX 200", Type: "index", Currency: "AUD"},
	{Symbol: "^TWII", Name: "TAIEX", Type: "index", Currency: "TWD"},
	{Symbol: "^JKSE", Name: "Jakarta Composite", Type: "index", Currency: "IDR"},
	{Symbol: "^KLSE", Name: "KLCI", Type: "index", Currency: "MYR"},
	{Symbol: "^NZ50", Name: "NZX 50", Type: "index", Currency: "NZD"},
	{Symbol: "^BVSP", Name: "Bovespa", Type: "index", Currency: "BRL"},
	{Symbol: "^MXX", Name: "IPC Mexico", Type: "index", Currency: "MXN"},
	{Symbol: "^GSPTSE", Name: "TSX Composite", Type: "index", Currency: "CAD"},
}

// Commodities are always quoted in USD.
var Commodities = []CatalogEntry{
	{Symbol: "GC=F", Name: "Gold", Type: "commodity", Currency: "USD"},
	{Symbol: "SI=F", Name: "Silver", Type: "commodity", Currency: "USD"},
	{Symbol: "CL=F", Name: "Crude Oil (WTI)", Type: "commodity", Currency: "USD"},
}

// CryptoIDs is the fixed CoinGecko id list served by the prices action
// and recognized by the indicators action.
var CryptoIDs = []string{
	"bitcoin", "ethereum", "solana", "ripple", "cardano", "dogecoin",
	"polkadot", "avalanche-2", "chainlink", "polygon-ecosystem-token",
	"tron", "shiba-inu", "litecoin", "uniswap", "cosmos",
	"stellar", "near", "internet-computer", "aptos", "sui",
	"arbitrum", "optimism", "filecoin", "hedera-hashgraph", "vechain",
	"aave", "the-graph", "render-token", "injective-protocol", "fantom",
	"pepe", "bonk", "floki", "sei-network", "celestia",
	"stacks", "maker", "theta-token", "lido-dao", "mantle",
}

var cryptoIDSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(CryptoIDs))
	for _, id := range CryptoIDs {
		set[id] = struct{}{}
	}
	return set
}()

// IsCryptoID reports whether id (case-insensitive) is a known CoinGecko id.
func IsCryptoID(id string) bool {
	_, ok := cryptoIDSet[strings.ToLower(id)]
	return ok
}

// AllCryptoIDs returns the tracked ids comma-joined, the shape the
// markets endpoint takes.
func AllCryptoIDs() string {
	return strings.Join(CryptoIDs, ",")
}

var indexDisplayNames = func() map[string]string {
	names := map[string]string{}
	for _, e := range GlobalIndices {
		names[e.Symbol] = e.Name
	}
	for _, e := range Commodities {
		names[e.Symbol] = e.Name
	}
	return names
}()

// DisplaySymbol maps a raw upstream symbol to what the dashboard shows:
// indices and commodities by name, Indian equities without the exchange
// suffix, everything else unchanged.
func DisplaySymbol(raw string) string {
	if name, ok := indexDisplayNames[raw]; ok {
		return name
	}
	return strings.TrimSuffix(raw, ".NS")
}

// CatalogCurrency resolves a quote currency: the catalog's known home
// currency first, then provider metadata, then USD.
func CatalogCurrency(entry CatalogEntry, providerCurrency string) string {
	if entry.Currency != "" {
		return entry.Currency
	}
	if providerCurrency != "" {
		return providerCurrency
	}
	return "USD"
}
