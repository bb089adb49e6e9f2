// Package provider resolves quotes, company profiles and symbol searches
// against the live upstream, falling back to the built-in static table when
// the upstream fails or is not configured.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolioquotes/internal/logging"
	"portfolioquotes/internal/metrics"
	"portfolioquotes/internal/provider/fallback"
	"portfolioquotes/internal/provider/ratelimit"
	"portfolioquotes/internal/quote"
)

const (
	// DefaultBatchDelay spaces live calls in GetMultipleQuotes to stay under
	// the free tier limit of five requests per minute.
	DefaultBatchDelay = 12 * time.Second
	// DefaultSearchLimit caps SearchSymbols.
	DefaultSearchLimit = 10
)

// Provider looks up market data. A Provider without an upstream is
// permanently static-only.
type Provider struct {
	upstream    Upstream
	gate        *ratelimit.MinInterval
	searchLimit int
	now         func() time.Time
	log         *zap.Logger
	metrics     *metrics.Metrics
}

type Option func(*Provider)

// WithUpstream enables live lookups. A nil upstream keeps the provider static-only.
func WithUpstream(u Upstream) Option {
	return func(p *Provider) { p.upstream = u }
}

// WithBatchDelay sets the minimum spacing of live calls made by GetMultipleQuotes.
func WithBatchDelay(d time.Duration) Option {
	return func(p *Provider) {
		if d >= 0 {
			p.gate = ratelimit.NewMinInterval(d)
		}
	}
}

func WithSearchLimit(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.searchLimit = n
		}
	}
}

// WithClock overrides time.Now for static quotes.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Provider) { p.log = logging.OrNop(l) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

func New(opts ...Option) *Provider {
	p := &Provider{
		gate:        ratelimit.NewMinInterval(DefaultBatchDelay),
		searchLimit: DefaultSearchLimit,
		now:         time.Now,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Live reports whether the provider calls the upstream.
func (p *Provider) Live() bool { return p.upstream != nil }

// GetQuote returns the live quote for symbol, or the static one when the
// live lookup fails. Symbols unknown to both are NotFound.
func (p *Provider) GetQuote(ctx context.Context, symbol string) quote.Result {
	symbol = quote.NormalizeSymbol(symbol)
	res := p.getQuote(ctx, symbol)
	p.metrics.ProviderResult("quote", res.Source.String())
	return res
}

func (p *Provider) getQuote(ctx context.Context, symbol string) quote.Result {
	res := quote.Result{Symbol: symbol}
	if symbol == "" {
		res.Cause = fmt.Errorf("empty symbol: %w", quote.ErrUnknownSymbol)
		return res
	}

	if p.upstream != nil {
		q, err := p.upstream.GlobalQuote(ctx, symbol)
		if err == nil {
			q.Symbol = symbol
			res.Quote, res.Source = &q, quote.Live
			return res
		}
		p.log.Warn("live quote failed, using static table", zap.String("symbol", symbol), zap.Error(err))
		res.Cause = err
	}

	if q, ok := fallback.Quote(symbol, p.now()); ok {
		res.Quote, res.Source = &q, quote.StaticFallback
		return res
	}
	if res.Cause == nil {
		res.Cause = fmt.Errorf("%s: %w", symbol, quote.ErrUnknownSymbol)
	}
	return res
}

// FetchMany looks up each distinct symbol in order, one at a time, keeping
// live calls at least the batch delay apart. The results follow the
// normalized, deduplicated input order. If ctx ends while waiting, the
// remaining symbols are NotFound with the context error as cause.
func (p *Provider) FetchMany(ctx context.Context, symbols []string) []quote.Result {
	symbols = quote.NormalizeSymbols(symbols)
	out := make([]quote.Result, 0, len(symbols))
	for i, s := range symbols {
		if p.upstream == nil {
			out = append(out, p.GetQuote(ctx, s))
			continue
		}
		var res quote.Result
		err := p.gate.Do(ctx, func(ctx context.Context) error {
			res = p.GetQuote(ctx, s)
			return nil
		})
		if err != nil {
			p.log.Info("batch quote lookup interrupted",
				zap.Int("done", i), zap.Int("total", len(symbols)), zap.Error(err))
			for _, rest := range symbols[i:] {
				out = append(out, quote.Result{Symbol: rest, Cause: err})
			}
			break
		}
		out = append(out, res)
	}
	return out
}

// GetMultipleQuotes returns the quotes of the found symbols in input order.
func (p *Provider) GetMultipleQuotes(ctx context.Context, symbols []string) []quote.Quote {
	return Quotes(p.FetchMany(ctx, symbols))
}

// Quotes keeps the quotes of found results, in order.
func Quotes(results []quote.Result) []quote.Quote {
	out := make([]quote.Quote, 0, len(results))
	for _, r := range results {
		if r.Found() {
			out = append(out, *r.Quote)
		}
	}
	return out
}

// GetCompanyInfo follows the same live-then-static policy as GetQuote.
// The error wraps quote.ErrUnknownSymbol when the source is NotFound.
func (p *Provider) GetCompanyInfo(ctx context.Context, symbol string) (quote.CompanyInfo, quote.Source, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return quote.CompanyInfo{}, quote.NotFound, fmt.Errorf("empty symbol: %w", quote.ErrUnknownSymbol)
	}

	var cause error
	if p.upstream != nil {
		info, err := p.upstream.CompanyOverview(ctx, symbol)
		if err == nil {
			p.metrics.ProviderResult("company", quote.Live.String())
			return info, quote.Live, nil
		}
		p.log.Warn("live company overview failed, using static table", zap.String("symbol", symbol), zap.Error(err))
		cause = err
	}

	if info, ok := fallback.Company(symbol); ok {
		p.metrics.ProviderResult("company", quote.StaticFallback.String())
		return info, quote.StaticFallback, nil
	}
	p.metrics.ProviderResult("company", quote.NotFound.String())
	if cause == nil {
		cause = quote.ErrUnknownSymbol
	}
	return quote.CompanyInfo{}, quote.NotFound, fmt.Errorf("company %s: %w", symbol, cause)
}

// SearchSymbols returns at most the search limit of matches for query. A
// blank query returns an empty list without calling the upstream.
func (p *Provider) SearchSymbols(ctx context.Context, query string) []quote.Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return []quote.Match{}
	}
	if p.upstream != nil {
		matches, err := p.upstream.SymbolSearch(ctx, query, p.searchLimit)
		if err == nil {
			p.metrics.ProviderResult("search", quote.Live.String())
			if len(matches) > p.searchLimit {
				matches = matches[:p.searchLimit]
			}
			return matches
		}
		p.log.Warn("live symbol search failed, using static table", zap.String("query", query), zap.Error(err))
	}
	p.metrics.ProviderResult("search", quote.StaticFallback.String())
	return fallback.Search(query, p.searchLimit)
}

// ValidateSymbol reports whether a quote can be found for symbol.
func (p *Provider) ValidateSymbol(ctx context.Context, symbol string) bool {
	return p.GetQuote(ctx, symbol).Found()
}
