// Package redisstore keeps the quote cache in Redis, one JSON value per
// symbol key, so several server instances can share it.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolioquotes/internal/quote"
)

const scanBatch = 200

// Store implements cache.Store on Redis.
type Store struct {
	client redis.UniversalClient
	prefix string
	// retention is a Redis-side TTL applied on every write. Freshness is
	// still decided by the cache; 0 keeps keys forever.
	retention time.Duration
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func WithRetention(d time.Duration) Option {
	return func(s *Store) { s.retention = d }
}

func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: "quotes:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial connects to a single Redis node and checks it answers.
func Dial(ctx context.Context, addr, password string, db int, opts ...Option) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, opts...), nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) key(symbol string) string { return s.prefix + symbol }

func (s *Store) Load(ctx context.Context, symbol string) (*quote.Quote, error) {
	data, err := s.client.Get(ctx, s.key(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quote %s: %w", symbol, err)
	}
	var q quote.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("unmarshal quote %s: %w", symbol, err)
	}
	return &q, nil
}

func (s *Store) Save(ctx context.Context, q quote.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote %s: %w", q.Symbol, err)
	}
	if err := s.client.Set(ctx, s.key(q.Symbol), data, s.retention).Err(); err != nil {
		return fmt.Errorf("set quote %s: %w", q.Symbol, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, symbol string) error {
	if err := s.client.Del(ctx, s.key(symbol)).Err(); err != nil {
		return fmt.Errorf("del quote %s: %w", symbol, err)
	}
	return nil
}

// DeleteAll removes every key under the prefix.
func (s *Store) DeleteAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan quotes: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("del quotes: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
