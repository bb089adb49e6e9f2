// Package sqlitestore persists the quote cache in a SQLite table, one row
// per symbol.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"portfolioquotes/internal/provider/cache/sqlitestore/migrations"
	"portfolioquotes/internal/quote"
)

const dayLayout = "2006-01-02"

// Store implements cache.Store on SQLite. last_updated holds Unix
// nanoseconds, so a loaded quote equals the saved one up to its location.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	clean := filepath.Clean(path)
	if dir := filepath.Dir(clean); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	dsn := "file:" + clean + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, symbol string) (*quote.Quote, error) {
	var (
		price, change, pct, day string
		volume, updated         int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT price, change, change_percent, volume, latest_trading_day, last_updated
		   FROM quote_cache WHERE symbol = ?`, symbol,
	).Scan(&price, &change, &pct, &volume, &day, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select quote %s: %w", symbol, err)
	}

	q := quote.Quote{Symbol: symbol, Volume: volume, LastUpdated: time.Unix(0, updated).UTC()}
	if q.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("decode price %s: %w", symbol, err)
	}
	if q.Change, err = decimal.NewFromString(change); err != nil {
		return nil, fmt.Errorf("decode change %s: %w", symbol, err)
	}
	if q.ChangePercent, err = decimal.NewFromString(pct); err != nil {
		return nil, fmt.Errorf("decode change percent %s: %w", symbol, err)
	}
	if day != "" {
		if q.LatestTradingDay, err = time.Parse(dayLayout, day); err != nil {
			return nil, fmt.Errorf("decode trading day %s: %w", symbol, err)
		}
	}
	return &q, nil
}

func (s *Store) Save(ctx context.Context, q quote.Quote) error {
	day := ""
	if !q.LatestTradingDay.IsZero() {
		day = q.LatestTradingDay.Format(dayLayout)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quote_cache (symbol, price, change, change_percent, volume, latest_trading_day, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET
		   price = excluded.price,
		   change = excluded.change,
		   change_percent = excluded.change_percent,
		   volume = excluded.volume,
		   latest_trading_day = excluded.latest_trading_day,
		   last_updated = excluded.last_updated`,
		q.Symbol, q.Price.String(), q.Change.String(), q.ChangePercent.String(),
		q.Volume, day, q.LastUpdated.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert quote %s: %w", q.Symbol, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, symbol string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quote_cache WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("delete quote %s: %w", symbol, err)
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM quote_cache`); err != nil {
		return fmt.Errorf("delete quotes: %w", err)
	}
	return nil
}
