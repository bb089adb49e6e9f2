package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolioquotes/internal/logging"
	"portfolioquotes/internal/metrics"
	"portfolioquotes/internal/quote"
)

// DefaultExpiry is how long a cached quote stays fresh.
const DefaultExpiry = 5 * time.Minute

// Cache answers whether a fresh quote exists for a symbol.
// Expiry is checked lazily on read; stale entries are never swept and are
// simply overwritten by the next Put.
type Cache struct {
	store   Store
	expiry  time.Duration
	now     func() time.Time
	log     *zap.Logger
	metrics *metrics.Metrics
}

type Option func(*Cache)

// WithExpiry sets the freshness window. A window of 0 means nothing is ever fresh.
func WithExpiry(d time.Duration) Option {
	return func(c *Cache) {
		if d >= 0 {
			c.expiry = d
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.log = logging.OrNop(l) }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, expiry: DefaultExpiry, now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Expiry() time.Duration { return c.expiry }

// Get returns the cached quote for symbol when it is still fresh.
// Storage failures are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, symbol string) (quote.Quote, bool) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return quote.Quote{}, false
	}
	q, err := c.store.Load(ctx, symbol)
	if err != nil {
		c.log.Warn("quote cache read failed", zap.String("symbol", symbol), zap.Error(err))
		c.metrics.CacheLookup("error")
		return quote.Quote{}, false
	}
	if q == nil || c.now().Sub(q.LastUpdated) >= c.expiry {
		c.metrics.CacheLookup("miss")
		return quote.Quote{}, false
	}
	c.metrics.CacheLookup("hit")
	return *q, true
}

// Put upserts q keyed by its upper-cased symbol. Write failures are logged
// and dropped.
func (c *Cache) Put(ctx context.Context, q quote.Quote) {
	q.Symbol = quote.NormalizeSymbol(q.Symbol)
	if q.Symbol == "" {
		return
	}
	if err := c.store.Save(ctx, q); err != nil {
		c.log.Warn("quote cache write failed", zap.String("symbol", q.Symbol), zap.Error(err))
	}
}

// Invalidate removes the entry for one symbol.
func (c *Cache) Invalidate(ctx context.Context, symbol string) error {
	symbol = quote.NormalizeSymbol(symbol)
	if err := c.store.Delete(ctx, symbol); err != nil {
		return fmt.Errorf("invalidate %s: %w", symbol, err)
	}
	return nil
}

// InvalidateAll removes every entry.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if err := c.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("invalidate all: %w", err)
	}
	return nil
}
