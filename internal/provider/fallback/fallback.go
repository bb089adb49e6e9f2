// Package fallback holds the built-in quotes and company profiles served
// when the live upstream is unavailable or not configured.
package fallback

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"portfolioquotes/internal/quote"
)

type entry struct {
	name, sector, industry string
	price, change, pct     string
	volume                 int64
	marketCap              int64
}

var table = map[string]entry{
	"AAPL":  {"Apple Inc.", "Technology", "Consumer Electronics", "189.84", "-2.35", "-1.2228", 52_164_500, 2_930_000_000_000},
	"MSFT":  {"Microsoft Corporation", "Technology", "Software - Infrastructure", "415.26", "3.12", "0.7570", 20_123_400, 3_090_000_000_000},
	"GOOGL": {"Alphabet Inc.", "Communication Services", "Internet Content & Information", "171.95", "1.04", "0.6085", 24_876_100, 2_120_000_000_000},
	"AMZN":  {"Amazon.com Inc.", "Consumer Cyclical", "Internet Retail", "186.51", "-0.88", "-0.4696", 37_412_900, 1_940_000_000_000},
	"TSLA":  {"Tesla Inc.", "Consumer Cyclical", "Auto Manufacturers", "248.50", "5.73", "2.3602", 98_330_200, 792_000_000_000},
	"META":  {"Meta Platforms Inc.", "Communication Services", "Internet Content & Information", "504.22", "-4.10", "-0.8066", 13_902_700, 1_280_000_000_000},
	"NVDA":  {"NVIDIA Corporation", "Technology", "Semiconductors", "131.26", "2.87", "2.2354", 243_112_000, 3_220_000_000_000},
	"JPM":   {"JPMorgan Chase & Co.", "Financial Services", "Banks - Diversified", "205.78", "0.64", "0.3120", 8_214_300, 589_000_000_000},
	"V":     {"Visa Inc.", "Financial Services", "Credit Services", "277.40", "-1.15", "-0.4128", 6_011_800, 556_000_000_000},
	"JNJ":   {"Johnson & Johnson", "Healthcare", "Drug Manufacturers - General", "152.33", "0.27", "0.1776", 7_455_600, 366_000_000_000},
	"SPY":   {"SPDR S&P 500 ETF Trust", "ETF", "Exchange Traded Fund", "548.12", "2.91", "0.5337", 61_004_900, 0},
	"QQQ":   {"Invesco QQQ Trust", "ETF", "Exchange Traded Fund", "474.85", "3.66", "0.7768", 35_870_100, 0},
}

// Has reports whether symbol is in the table.
func Has(symbol string) bool {
	_, ok := table[quote.NormalizeSymbol(symbol)]
	return ok
}

// Symbols returns the known symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(table))
	for s := range table {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Quote returns the built-in quote for symbol, stamped with now.
func Quote(symbol string, now time.Time) (quote.Quote, bool) {
	symbol = quote.NormalizeSymbol(symbol)
	e, ok := table[symbol]
	if !ok {
		return quote.Quote{}, false
	}
	return quote.Quote{
		Symbol:        symbol,
		Price:         decimal.RequireFromString(e.price),
		Change:        decimal.RequireFromString(e.change),
		ChangePercent: decimal.RequireFromString(e.pct),
		Volume:        e.volume,
		LastUpdated:   now,
	}, true
}

// Company returns the built-in profile for symbol.
func Company(symbol string) (quote.CompanyInfo, bool) {
	symbol = quote.NormalizeSymbol(symbol)
	e, ok := table[symbol]
	if !ok {
		return quote.CompanyInfo{}, false
	}
	info := quote.CompanyInfo{Symbol: symbol, Name: e.name, Sector: e.sector, Industry: e.industry}
	if e.marketCap > 0 {
		mc := e.marketCap
		info.MarketCap = &mc
	}
	return info, true
}

// Search matches query case-insensitively against symbols and names and
// returns at most limit hits sorted by symbol. limit <= 0 means no cap.
func Search(query string, limit int) []quote.Match {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []quote.Match{}
	if q == "" {
		return out
	}
	for _, s := range Symbols() {
		if limit > 0 && len(out) == limit {
			break
		}
		e := table[s]
		if strings.Contains(strings.ToLower(s), q) || strings.Contains(strings.ToLower(e.name), q) {
			out = append(out, quote.Match{Symbol: s, Name: e.name, Type: matchType(e), Region: "United States", Currency: "USD"})
		}
	}
	return out
}

func matchType(e entry) string {
	if e.sector == "ETF" {
		return "ETF"
	}
	return "Equity"
}
