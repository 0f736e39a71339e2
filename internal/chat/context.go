package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"tradeagent/internal/model"
)

// personaPrompt is the fixed analyst persona and report structure sent
// as the base system prompt on every chat request.
const personaPrompt = `You are an elite quantitative trading strategy agent called TradeAgent. Your role is to:

1. **Analyze market data** — Compress and interpret price action, volume, volatility, and technical indicators.
2. **Identify patterns** — Detect chart patterns, mean reversion signals, momentum shifts, and statistical anomalies.
3. **Recommend strategies** — Suggest entry/exit points, position sizing, risk management, and hedging approaches.
4. **Generate structured reports** when analyzing specific assets with these sections:
   - 📊 **Market Snapshot** — Current price, trend, key metrics
   - 📈 **Trend Analysis** — Direction, momentum, moving averages
   - 🎯 **Support & Resistance** — Key levels
   - 📉 **Indicator Signals** — RSI, MACD, volume analysis
   - ⚠️ **Risk Assessment** — Volatility, downside risks
   - 💡 **Recommendation** — BUY/HOLD/SELL with confidence score
5. **Explain rationale** — Provide clear reasoning backed by data.

Always format responses with markdown. Use **bold** for key metrics, tables for comparisons, bullet points for action items. Include risk warnings.`

// aliasEntry is one keyword-to-symbol association. The list is ordered:
// detection scans it front to back and the first keyword match wins.
type aliasEntry struct {
	Keyword string
	Symbol  string
}

var assetAliases = []aliasEntry{
	{"btc", "bitcoin"}, {"bitcoin", "bitcoin"},
	{"eth", "ethereum"}, {"ethereum", "ethereum"},
	{"sol", "solana"}, {"solana", "solana"},
	{"xrp", "ripple"}, {"ada", "cardano"}, {"doge", "dogecoin"},
	{"tesla", "TSLA"}, {"tsla", "TSLA"},
	{"apple", "AAPL"}, {"aapl", "AAPL"},
	{"nvidia", "NVDA"}, {"nvda", "NVDA"},
	{"reliance", "RELIANCE.NS"}, {"tcs", "TCS.NS"}, {"hdfc", "HDFCBANK.NS"},
	{"infosys", "INFY.NS"}, {"icici", "ICICIBANK.NS"}, {"sbi", "SBIN.NS"},
	{"nifty", "^NSEI"}, {"sensex", "^BSESN"},
}

// maxDetectedAssets caps how many auto-detected symbols get a live
// summary per request.
const maxDetectedAssets = 3

// DetectAssets scans a user message for known asset keywords,
// case-insensitively, and returns the resolved symbols in first-match
// order with duplicates removed.
func DetectAssets(message string) []string {
	lower := strings.ToLower(message)
	var detected []string
	seen := map[string]bool{}
	for _, alias := range assetAliases {
		if strings.Contains(lower, alias.Keyword) && !seen[alias.Symbol] {
			seen[alias.Symbol] = true
			detected = append(detected, alias.Symbol)
		}
	}
	return detected
}

// SummaryProvider yields indicator summaries; satisfied by the market
// service so chat and the market endpoint share one cache and engine.
type SummaryProvider interface {
	Indicators(ctx context.Context, symbol string) (model.IndicatorResult, error)
}

// Assembler builds the per-request system prompt: persona, uploaded
// document context, then live market summaries.
type Assembler struct {
	market SummaryProvider
	log    *logrus.Entry
}

// NewAssembler creates an Assembler backed by the market service.
func NewAssembler(market SummaryProvider, log *logrus.Logger) *Assembler {
	return &Assembler{market: market, log: log.WithField("component", "chat")}
}

// SystemPrompt renders the full system prompt for one chat request.
// Summary fetch failures drop that asset silently; the prompt is always
// usable.
func (a *Assembler) SystemPrompt(ctx context.Context, req model.ChatRequest) string {
	var sb strings.Builder
	sb.WriteString(personaPrompt)

	if len(req.Documents) > 0 {
		sb.WriteString("\n\n## Reference Documents (RAG Context)\nUse these documents to ground your analysis:\n\n")
		for _, doc := range req.Documents {
			fmt.Fprintf(&sb, "### %s\n%s\n\n", doc.Name, doc.Content)
		}
	}

	if req.Asset != "" {
		if res, err := a.market.Indicators(ctx, req.Asset); err == nil {
			fmt.Fprintf(&sb, "\n\n## Live Market Data (Auto-fetched)\n%s\n", res.Summary)
		} else {
			a.log.WithError(err).WithField("asset", req.Asset).Debug("explicit asset summary unavailable")
		}
		return sb.String()
	}

	lastMsg := ""
	if len(req.Messages) > 0 {
		lastMsg = req.Messages[len(req.Messages)-1].Content
	}
	targets := DetectAssets(lastMsg)
	if len(targets) > maxDetectedAssets {
		targets = targets[:maxDetectedAssets]
	}
	if summaries := a.liveSummaries(ctx, targets); len(summaries) > 0 {
		fmt.Fprintf(&sb, "\n\n## Live Market Data (Auto-detected)\n%s\n", strings.Join(summaries, "\n"))
	}
	return sb.String()
}

// liveSummaries fetches one summary per symbol concurrently, joins after
// every fetch has finished, and keeps successes in detection order.
func (a *Assembler) liveSummaries(ctx context.Context, symbols []string) []string {
	if len(symbols) == 0 {
		return nil
	}
	results := make([]string, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			res, err := a.market.Indicators(ctx, sym)
			if err != nil {
				a.log.WithError(err).WithField("symbol", sym).Debug("live summary unavailable")
				return
			}
			results[i] = res.Summary
		}(i, sym)
	}
	wg.Wait()

	out := make([]string, 0, len(results))
	for _, s := range results {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
