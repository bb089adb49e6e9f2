package alphavantage

import (
	"context"
	"fmt"

	"portfolioquotes/internal/quote"
)

// CompanyOverview fetches the name and classification of symbol. An empty
// payload yields an error wrapping quote.ErrUnknownSymbol.
func (c *Client) CompanyOverview(ctx context.Context, symbol string) (quote.CompanyInfo, error) {
	symbol = quote.NormalizeSymbol(symbol)
	doc, err := c.get(ctx, "OVERVIEW", map[string]string{"symbol": symbol})
	if err != nil {
		return quote.CompanyInfo{}, err
	}
	if len(doc) == 0 {
		return quote.CompanyInfo{}, fmt.Errorf("overview %s: %w", symbol, quote.ErrUnknownSymbol)
	}

	info := quote.CompanyInfo{
		Symbol:   quote.NormalizeSymbol(field(doc, "$.Symbol")),
		Name:     field(doc, "$.Name"),
		Sector:   field(doc, "$.Sector"),
		Industry: field(doc, "$.Industry"),
	}
	if info.Symbol == "" {
		info.Symbol = symbol
	}
	if info.MarketCap, err = parseMarketCap(field(doc, "$.MarketCapitalization")); err != nil {
		return quote.CompanyInfo{}, fmt.Errorf("overview %s: %w", symbol, err)
	}
	return info, nil
}
