package quote

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownSymbol reports that a symbol is known to neither the live
// upstream nor the static table.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Quote is the normalized shape returned by every quote source.
// Symbol is always upper-cased and Price is never negative.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Price            decimal.Decimal `json:"price"`
	Change           decimal.Decimal `json:"change"`
	ChangePercent    decimal.Decimal `json:"change_percent"`
	Volume           int64           `json:"volume"`
	LatestTradingDay time.Time       `json:"latest_trading_day,omitzero"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// CompanyInfo classifies a symbol by sector and industry.
type CompanyInfo struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
	MarketCap *int64 `json:"market_cap,omitempty"`
}

// Match is a single symbol search hit.
type Match struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Region   string `json:"region,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSymbols normalizes a list, dropping blanks and duplicates while
// keeping the first-seen order.
func NormalizeSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
