package app_test

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolioquotes/internal/app"
	"portfolioquotes/internal/config"
	"portfolioquotes/internal/quote"
)

func TestNew_StaticOnlyMemory(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	a, err := app.New(t.Context(), cfg, zaptest.NewLogger(t), prometheus.NewRegistry())
	require.NoError(t, err)
	defer a.Close()

	res := a.Quotes.GetQuote(t.Context(), "AAPL")
	require.Equal(t, quote.StaticFallback, res.Source)

	p, err := a.Portfolios.CreatePortfolio(t.Context(), "Main", "")
	require.NoError(t, err)
	_, err = a.Portfolios.AddHolding(t.Context(), p.ID, "MSFT", decimal.NewFromInt(2), decimal.NewFromInt(100))
	require.NoError(t, err)
}

func TestNew_SQLiteCache(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Cache.Backend = "sqlite"
	cfg.Cache.SQLitePath = filepath.Join(t.TempDir(), "quotes.db")

	a, err := app.New(t.Context(), cfg, nil, nil)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.FileExists(t, cfg.Cache.SQLitePath)
}

func TestNew_BadBackends(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Cache.Backend = "memcached"
	_, err := app.New(t.Context(), cfg, nil, nil)
	require.ErrorContains(t, err, "unsupported cache backend")

	cfg = config.Default()
	cfg.Store.Driver = "oracle"
	_, err = app.New(t.Context(), cfg, nil, nil)
	require.ErrorContains(t, err, "unsupported store driver")
}
