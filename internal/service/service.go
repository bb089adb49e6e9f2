// Package service is the quote API the rest of the application uses: a
// read-through cache in front of the provider.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"portfolioquotes/internal/logging"
	"portfolioquotes/internal/provider"
	"portfolioquotes/internal/provider/cache"
	"portfolioquotes/internal/quote"
)

// Service serves quotes from the cache when fresh and from the provider
// otherwise. Only live quotes are written back to the cache.
type Service struct {
	cache    *cache.Cache
	provider *provider.Provider
	group    singleflight.Group
	log      *zap.Logger
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logging.OrNop(l) }
}

func New(c *cache.Cache, p *provider.Provider, opts ...Option) *Service {
	s := &Service{cache: c, provider: p, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetQuote returns the quote for symbol. Concurrent misses for the same
// symbol share one provider lookup.
func (s *Service) GetQuote(ctx context.Context, symbol string) quote.Result {
	symbol = quote.NormalizeSymbol(symbol)
	if q, ok := s.cache.Get(ctx, symbol); ok {
		return quote.Result{Symbol: symbol, Quote: &q, Source: quote.Live, Cached: true}
	}
	if symbol == "" {
		return s.provider.GetQuote(ctx, symbol)
	}

	v, _, _ := s.group.Do(symbol, func() (any, error) {
		res := s.provider.GetQuote(ctx, symbol)
		s.store(ctx, res)
		return res, nil
	})
	res := v.(quote.Result)
	if res.Quote != nil {
		q := *res.Quote
		res.Quote = &q
	}
	return res
}

// FetchQuotes returns one result per distinct symbol, in input order.
// Fresh cached entries are served directly; the rest go through the
// provider's rate-limited batch path.
func (s *Service) FetchQuotes(ctx context.Context, symbols []string) []quote.Result {
	symbols = quote.NormalizeSymbols(symbols)
	out := make([]quote.Result, len(symbols))

	var (
		missing []string
		at      = make(map[string]int, len(symbols))
	)
	for i, sym := range symbols {
		if q, ok := s.cache.Get(ctx, sym); ok {
			out[i] = quote.Result{Symbol: sym, Quote: &q, Source: quote.Live, Cached: true}
			continue
		}
		missing = append(missing, sym)
		at[sym] = i
	}
	if len(missing) == 0 {
		return out
	}

	s.log.Debug("fetching uncached quotes",
		zap.Int("cached", len(symbols)-len(missing)), zap.Strings("missing", missing))
	for _, res := range s.provider.FetchMany(ctx, missing) {
		s.store(ctx, res)
		out[at[res.Symbol]] = res
	}
	return out
}

// GetMultipleQuotes returns the quotes that could be found, in input order.
func (s *Service) GetMultipleQuotes(ctx context.Context, symbols []string) []quote.Quote {
	return provider.Quotes(s.FetchQuotes(ctx, symbols))
}

func (s *Service) store(ctx context.Context, res quote.Result) {
	if res.Source == quote.Live && res.Quote != nil {
		s.cache.Put(ctx, *res.Quote)
	}
}

func (s *Service) GetCompanyInfo(ctx context.Context, symbol string) (quote.CompanyInfo, quote.Source, error) {
	return s.provider.GetCompanyInfo(ctx, symbol)
}

func (s *Service) SearchSymbols(ctx context.Context, query string) []quote.Match {
	return s.provider.SearchSymbols(ctx, query)
}

func (s *Service) ValidateSymbol(ctx context.Context, symbol string) bool {
	return s.provider.ValidateSymbol(ctx, symbol)
}

// Invalidate drops the cached quote for symbol.
func (s *Service) Invalidate(ctx context.Context, symbol string) error {
	return s.cache.Invalidate(ctx, symbol)
}

// InvalidateAll empties the cache.
func (s *Service) InvalidateAll(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
