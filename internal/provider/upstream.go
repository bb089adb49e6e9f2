package provider

import (
	"context"

	"portfolioquotes/internal/quote"
)

// Upstream is the live market data API. *alphavantage.Client implements it.
//
//go:generate mockgen -package=provider_test -destination=mock_upstream_test.go -source=upstream.go Upstream
type Upstream interface {
	GlobalQuote(ctx context.Context, symbol string) (quote.Quote, error)
	CompanyOverview(ctx context.Context, symbol string) (quote.CompanyInfo, error)
	SymbolSearch(ctx context.Context, keywords string, limit int) ([]quote.Match, error)
}
