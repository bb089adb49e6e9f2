// Package app builds the quote and portfolio services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"portfolioquotes/internal/config"
	"portfolioquotes/internal/httpx"
	"portfolioquotes/internal/logging"
	"portfolioquotes/internal/metrics"
	"portfolioquotes/internal/portfolio"
	"portfolioquotes/internal/portfolio/gormstore"
	"portfolioquotes/internal/provider"
	"portfolioquotes/internal/provider/alphavantage"
	"portfolioquotes/internal/provider/cache"
	"portfolioquotes/internal/provider/cache/redisstore"
	"portfolioquotes/internal/provider/cache/sqlitestore"
	"portfolioquotes/internal/service"
)

// App holds the wired services and the resources to release on Close.
type App struct {
	Quotes     *service.Service
	Portfolios *portfolio.Service
	Metrics    *metrics.Metrics

	closers []io.Closer
}

// New wires the stack described by cfg. reg may be nil to skip metrics.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, reg prometheus.Registerer) (*App, error) {
	log = logging.OrNop(log)
	a := &App{}
	if reg != nil {
		a.Metrics = metrics.New(reg)
	}

	store, err := a.cacheStore(ctx, cfg.Cache)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	c := cache.New(store,
		cache.WithExpiry(cfg.Cache.Expiry()),
		cache.WithLogger(log.Named("cache")),
		cache.WithMetrics(a.Metrics),
	)

	opts := []provider.Option{
		provider.WithBatchDelay(cfg.AlphaVantage.BatchDelay()),
		provider.WithSearchLimit(cfg.AlphaVantage.SearchLimit),
		provider.WithLogger(log.Named("provider")),
		provider.WithMetrics(a.Metrics),
	}
	if cfg.AlphaVantage.Live() {
		opts = append(opts, provider.WithUpstream(alphavantage.NewClient(cfg.AlphaVantage.APIKey,
			alphavantage.WithBaseURL(cfg.AlphaVantage.Endpoint),
			alphavantage.WithHTTPClient(httpx.New(cfg.AlphaVantage.Timeout())),
			alphavantage.WithMetrics(a.Metrics),
		)))
	} else {
		log.Info("no AlphaVantage API key configured, serving static quotes only")
	}
	a.Quotes = service.New(c, provider.New(opts...), service.WithLogger(log.Named("service")))

	repo, err := a.repository(ctx, cfg.Store)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Portfolios = portfolio.NewService(repo, a.Quotes, portfolio.WithLogger(log.Named("portfolio")))

	log.Info("services ready",
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Duration("cache_expiry", cfg.Cache.Expiry()),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("live", cfg.AlphaVantage.Live()),
	)
	return a, nil
}

func (a *App) cacheStore(ctx context.Context, cfg config.Cache) (cache.Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return cache.NewMemoryStore(), nil
	case "sqlite":
		s, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		a.closers = append(a.closers, s)
		return s, nil
	case "redis":
		s, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redisstore.WithPrefix(cfg.RedisPrefix),
			// keep stale keys around long enough to be useful for inspection
			redisstore.WithRetention(10*cfg.Expiry()),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		a.closers = append(a.closers, s)
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}

func (a *App) repository(ctx context.Context, cfg config.Store) (portfolio.Repository, error) {
	switch d := strings.ToLower(cfg.Driver); d {
	case "", "memory":
		return portfolio.NewMemoryRepository(), nil
	default:
		s, err := gormstore.Open(ctx, d, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("portfolio store: %w", err)
		}
		a.closers = append(a.closers, s)
		return s, nil
	}
}

// Close releases the cache and portfolio stores.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
