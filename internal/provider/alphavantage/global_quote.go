package alphavantage

import (
	"context"
	"fmt"

	"portfolioquotes/internal/quote"
)

// GlobalQuote fetches the latest quote for symbol.
//
// An empty "Global Quote" object means the API does not know the symbol and
// yields an error wrapping quote.ErrUnknownSymbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (quote.Quote, error) {
	symbol = quote.NormalizeSymbol(symbol)
	doc, err := c.get(ctx, "GLOBAL_QUOTE", map[string]string{"symbol": symbol})
	if err != nil {
		return quote.Quote{}, err
	}
	q, err := parseGlobalQuote(doc)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("global quote %s: %w", symbol, err)
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	q.LastUpdated = c.now()
	return q, nil
}

// parseGlobalQuote reads a GLOBAL_QUOTE payload:
//
//	{
//	  "Global Quote": {
//	    "01. symbol": "IBM",
//	    "05. price": "189.8400",
//	    "06. volume": "3127654",
//	    "07. latest trading day": "2025-01-02",
//	    "09. change": "-2.3500",
//	    "10. change percent": "-1.2534%"
//	  }
//	}
func parseGlobalQuote(doc map[string]any) (quote.Quote, error) {
	gq := object(doc, `$["Global Quote"]`)
	if len(gq) == 0 {
		return quote.Quote{}, quote.ErrUnknownSymbol
	}

	var (
		q   quote.Quote
		err error
	)
	q.Symbol = quote.NormalizeSymbol(field(gq, `$["01. symbol"]`))
	if q.Price, err = parseDecimal("price", field(gq, `$["05. price"]`)); err != nil {
		return quote.Quote{}, err
	}
	if q.Price.IsNegative() {
		return quote.Quote{}, fmt.Errorf("%w: negative price %s", ErrMalformed, q.Price)
	}
	if q.Change, err = parseDecimal("change", field(gq, `$["09. change"]`)); err != nil {
		return quote.Quote{}, err
	}
	if q.ChangePercent, err = parsePercent(field(gq, `$["10. change percent"]`)); err != nil {
		return quote.Quote{}, err
	}
	if q.Volume, err = parseVolume(field(gq, `$["06. volume"]`)); err != nil {
		return quote.Quote{}, err
	}
	if q.LatestTradingDay, err = parseDay(field(gq, `$["07. latest trading day"]`)); err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}
