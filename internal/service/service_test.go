package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolioquotes/internal/provider"
	"portfolioquotes/internal/provider/alphavantage"
	"portfolioquotes/internal/provider/cache"
	"portfolioquotes/internal/quote"
	"portfolioquotes/internal/service"
)

// fakeUpstream knows a fixed set of live prices and counts quote calls.
type fakeUpstream struct {
	prices  map[string]string
	failAll bool
	block   chan struct{}
	calls   atomic.Int32
}

func (f *fakeUpstream) GlobalQuote(_ context.Context, symbol string) (quote.Quote, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.failAll {
		return quote.Quote{}, alphavantage.ErrRateLimited
	}
	p, ok := f.prices[symbol]
	if !ok {
		return quote.Quote{}, quote.ErrUnknownSymbol
	}
	return quote.Quote{
		Symbol:           symbol,
		Price:            decimal.RequireFromString(p),
		Change:           decimal.RequireFromString("-1.25"),
		ChangePercent:    decimal.RequireFromString("-0.6165"),
		Volume:           1_234_567,
		LatestTradingDay: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		LastUpdated:      time.Now(),
	}, nil
}

func (f *fakeUpstream) CompanyOverview(context.Context, string) (quote.CompanyInfo, error) {
	return quote.CompanyInfo{}, alphavantage.ErrRateLimited
}

func (f *fakeUpstream) SymbolSearch(context.Context, string, int) ([]quote.Match, error) {
	return nil, alphavantage.ErrRateLimited
}

type fixture struct {
	svc      *service.Service
	store    *cache.MemoryStore
	upstream *fakeUpstream
}

func newFixture(t *testing.T, up *fakeUpstream, expiry time.Duration) fixture {
	t.Helper()
	store := cache.NewMemoryStore()
	log := zaptest.NewLogger(t)
	c := cache.New(store, cache.WithExpiry(expiry), cache.WithLogger(log))
	p := provider.New(provider.WithUpstream(up), provider.WithBatchDelay(0), provider.WithLogger(log))
	return fixture{svc: service.New(c, p, service.WithLogger(log)), store: store, upstream: up}
}

func TestGetQuote_SecondCallIsCached(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newFixture(t, &fakeUpstream{prices: map[string]string{"AAPL": "201.5"}}, time.Minute)

	// Act
	first := f.svc.GetQuote(t.Context(), "AAPL")
	second := f.svc.GetQuote(t.Context(), "aapl")

	// Assert
	require.Equal(t, quote.Live, first.Source)
	require.False(t, first.Cached)
	require.Equal(t, quote.Live, second.Source)
	require.True(t, second.Cached)
	require.Equal(t, *first.Quote, *second.Quote)
	require.Equal(t, int32(1), f.upstream.calls.Load())
}

func TestGetQuote_ZeroExpiryAlwaysRefetches(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{prices: map[string]string{"AAPL": "201.5"}}, 0)

	f.svc.GetQuote(t.Context(), "AAPL")
	res := f.svc.GetQuote(t.Context(), "AAPL")

	require.False(t, res.Cached)
	require.Equal(t, int32(2), f.upstream.calls.Load())
}

func TestGetQuote_FallbackIsNotCached(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{failAll: true}, time.Minute)

	res := f.svc.GetQuote(t.Context(), "MSFT")
	require.Equal(t, quote.StaticFallback, res.Source)
	require.ErrorIs(t, res.Cause, alphavantage.ErrRateLimited)
	require.Zero(t, f.store.Len())

	res = f.svc.GetQuote(t.Context(), "MSFT")
	require.Equal(t, quote.StaticFallback, res.Source)
	require.Equal(t, int32(2), f.upstream.calls.Load())
}

func TestGetQuote_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{prices: map[string]string{}}, time.Minute)

	res := f.svc.GetQuote(t.Context(), "ZZZZ")
	require.Equal(t, quote.NotFound, res.Source)
	require.ErrorIs(t, res.Cause, quote.ErrUnknownSymbol)
	require.Zero(t, f.store.Len())
}

func TestGetQuote_CoalescesConcurrentMisses(t *testing.T) {
	t.Parallel()

	up := &fakeUpstream{prices: map[string]string{"NVDA": "131"}, block: make(chan struct{})}
	f := newFixture(t, up, time.Minute)

	const n = 8
	var (
		wg      sync.WaitGroup
		results = make([]quote.Result, n)
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.svc.GetQuote(t.Context(), "NVDA")
		}()
	}
	// let the first lookup reach the upstream before releasing it
	require.Eventually(t, func() bool { return up.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(up.block)
	wg.Wait()

	for _, r := range results {
		require.True(t, r.Found())
		require.Equal(t, "NVDA", r.Quote.Symbol)
	}
	require.Less(t, up.calls.Load(), int32(n))
}

func TestFetchQuotes_MergesCacheAndProviderInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{prices: map[string]string{"AAPL": "201.5", "TSLA": "250"}}, time.Minute)
	f.svc.GetQuote(t.Context(), "TSLA") // warm

	results := f.svc.FetchQuotes(t.Context(), []string{"aapl", "TSLA", "ZZZZ", "JPM", "AAPL"})

	require.Len(t, results, 4)
	require.Equal(t, []string{"AAPL", "TSLA", "ZZZZ", "JPM"},
		[]string{results[0].Symbol, results[1].Symbol, results[2].Symbol, results[3].Symbol})
	require.False(t, results[0].Cached)
	require.True(t, results[1].Cached)
	require.Equal(t, quote.NotFound, results[2].Source)
	require.Equal(t, quote.StaticFallback, results[3].Source)

	// TSLA warm call, then AAPL, ZZZZ and JPM
	require.Equal(t, int32(4), f.upstream.calls.Load())

	got := f.svc.GetMultipleQuotes(t.Context(), []string{"JPM", "AAPL", "ZZZZ"})
	require.Len(t, got, 2)
	require.Equal(t, "JPM", got[0].Symbol)
	require.Equal(t, "AAPL", got[1].Symbol)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{prices: map[string]string{"AAPL": "1", "MSFT": "2"}}, time.Minute)
	f.svc.GetMultipleQuotes(t.Context(), []string{"AAPL", "MSFT"})
	require.Equal(t, 2, f.store.Len())

	require.NoError(t, f.svc.Invalidate(t.Context(), "aapl"))
	require.Equal(t, 1, f.store.Len())
	require.False(t, f.svc.GetQuote(t.Context(), "AAPL").Cached)

	require.NoError(t, f.svc.InvalidateAll(t.Context()))
	require.Zero(t, f.store.Len())
}

func TestPassthroughs(t *testing.T) {
	t.Parallel()

	f := newFixture(t, &fakeUpstream{failAll: true}, time.Minute)

	info, src, err := f.svc.GetCompanyInfo(t.Context(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, quote.StaticFallback, src)
	require.Equal(t, "Apple Inc.", info.Name)

	require.NotEmpty(t, f.svc.SearchSymbols(t.Context(), "apple"))
	require.True(t, f.svc.ValidateSymbol(t.Context(), "AAPL"))
	require.False(t, f.svc.ValidateSymbol(t.Context(), "ZZZZ"))
}
