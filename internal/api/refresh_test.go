package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolioquotes/internal/api"
	"portfolioquotes/internal/portfolio"
	"portfolioquotes/internal/provider"
	"portfolioquotes/internal/provider/cache"
	"portfolioquotes/internal/quote"
	"portfolioquotes/internal/service"
)

// flatUpstream prices every symbol at 10.
type flatUpstream struct{}

func (flatUpstream) GlobalQuote(_ context.Context, symbol string) (quote.Quote, error) {
	return quote.Quote{Symbol: symbol, Price: decimal.NewFromInt(10), LastUpdated: time.Now()}, nil
}

func (flatUpstream) CompanyOverview(_ context.Context, symbol string) (quote.CompanyInfo, error) {
	return quote.CompanyInfo{Symbol: symbol, Name: symbol, Sector: "Technology"}, nil
}

func (flatUpstream) SymbolSearch(context.Context, string, int) ([]quote.Match, error) {
	return []quote.Match{}, nil
}

func TestRefresh_OutlastsServerWriteTimeout(t *testing.T) {
	t.Parallel()

	// Arrange: four holdings spaced 200ms apart take longer than the
	// server's 300ms write timeout
	const batchDelay = 200 * time.Millisecond
	log := zaptest.NewLogger(t)
	quotes := service.New(
		cache.New(cache.NewMemoryStore(), cache.WithExpiry(0)),
		provider.New(provider.WithUpstream(flatUpstream{}), provider.WithBatchDelay(batchDelay), provider.WithLogger(log)),
	)
	portfolios := portfolio.NewService(portfolio.NewMemoryRepository(), quotes)
	p, err := portfolios.CreatePortfolio(t.Context(), "Main", "")
	require.NoError(t, err)
	for _, sym := range []string{"AAA", "BBB", "CCC", "DDD"} {
		_, err := portfolios.AddHolding(t.Context(), p.ID, sym, decimal.NewFromInt(1), decimal.NewFromInt(5))
		require.NoError(t, err)
	}

	router := api.NewRouter(log, prometheus.NewRegistry(),
		api.NewPortfolioHandler(portfolios, time.Second, batchDelay),
	)
	srv := httptest.NewUnstartedServer(router)
	srv.Config.WriteTimeout = 300 * time.Millisecond
	srv.Start()
	defer srv.Close()

	// Act
	start := time.Now()
	resp, err := srv.Client().Post(srv.URL+"/api/portfolios/"+p.ID+"/refresh", "application/json", strings.NewReader(""))

	// Assert: the response arrives intact after the write timeout has passed
	require.NoError(t, err)
	defer resp.Body.Close()
	require.GreaterOrEqual(t, time.Since(start), 3*batchDelay)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report portfolio.RefreshReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Equal(t, []string{"AAA", "BBB", "CCC", "DDD"}, report.Updated)
}
